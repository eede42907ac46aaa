package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the portfolio API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>portfolio-backend Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the portfolio endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "portfolio-backend", "version": "v0.1.0" },
  "paths": {
    "/api/health": {
      "get": { "summary": "Liveness check", "responses": { "200": { "description": "status, timestamp and uptime" } } }
    },
    "/api/portfolio/data": {
      "get": { "summary": "Get the portfolio document (defaults when none stored)", "responses": { "200": { "description": "document" } } },
      "post": {
        "summary": "Replace the whole portfolio document",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"email":{"type":"string"}}}}}},
        "responses": { "200": { "description": "stored document echoed back" }, "400": { "description": "name/email missing" } }
      }
    },
    "/api/portfolio/reset": {
      "post": { "summary": "Reset the portfolio document to the built-in defaults", "responses": { "200": { "description": "default document" } } }
    },
    "/api/upload/image": {
      "post": {
        "summary": "Upload one image (field name: image); normalized to fit 800x800",
        "requestBody": { "content": { "multipart/form-data": { "schema": {"type":"object","properties":{"image":{"type":"string","format":"binary"}}}}}},
        "responses": { "200": { "description": "filename, url and path" }, "400": { "description": "no file / bad type / too large" } }
      }
    },
    "/api/upload/images": {
      "get": { "summary": "List uploaded images (directory listing)", "responses": { "200": { "description": "filenames with urls" } } }
    },
    "/api/upload/image/{filename}": {
      "delete": { "summary": "Delete an uploaded image", "responses": { "200": { "description": "deleted" }, "404": { "description": "file not found" } } }
    },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
