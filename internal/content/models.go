package content

import (
	"encoding/json"
	"time"
)

// PortfolioContent is the full editable site content. One instance exists per
// deployment; it is addressed by a well-known key/path, not by ID.
// Every field is optional at read time; absent fields inherit the built-in
// default document field-by-field (see MergeWithDefaults).
type PortfolioContent struct {
	Name            string `json:"name" bson:"name"`
	Role            string `json:"role" bson:"role"`
	Location        string `json:"location" bson:"location"`
	Bio             string `json:"bio" bson:"bio"`
	ProfileImage    string `json:"profileImage" bson:"profileImage"`
	BackgroundImage string `json:"backgroundImage" bson:"backgroundImage"`
	Email           string `json:"email" bson:"email"`
	Phone           string `json:"phone" bson:"phone"`
	Messenger       string `json:"messenger" bson:"messenger"`

	Socials Socials `json:"socials" bson:"socials"`
	About   About   `json:"about" bson:"about"`

	// Ordered collections; order is display order and is preserved on save.
	SkillsTabs   []SkillTab     `json:"skillsTabs" bson:"skillsTabs"`
	Education    []TimelineItem `json:"education" bson:"education"`
	Experience   []TimelineItem `json:"experience" bson:"experience"`
	Projects     []Project      `json:"projects" bson:"projects"`
	Services     []ServiceItem  `json:"services" bson:"services"`
	Testimonials []Testimonial  `json:"testimonials" bson:"testimonials"`
}

// Socials maps platform name to profile URL; every platform is optional.
type Socials struct {
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Github    string `json:"github,omitempty" bson:"github,omitempty"`
	Linkedin  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Youtube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
}

// About is the hero/about section copy.
type About struct {
	Title               string `json:"title" bson:"title"`
	Description         string `json:"description" bson:"description"`
	ExperienceYears     string `json:"experienceYears" bson:"experienceYears"`
	ProjectsCompleted   string `json:"projectsCompleted" bson:"projectsCompleted"`
	SupportAvailability string `json:"supportAvailability" bson:"supportAvailability"`
}

type SkillItem struct {
	Name    string `json:"name" bson:"name"`
	Percent int    `json:"percent" bson:"percent"` // 0..100
}

type SkillTab struct {
	ID       string      `json:"id" bson:"id"`
	Icon     string      `json:"icon" bson:"icon"`
	Title    string      `json:"title" bson:"title"`
	Subtitle string      `json:"subtitle" bson:"subtitle"`
	Items    []SkillItem `json:"items" bson:"items"`
}

// TimelineItem is a free-text education or experience entry.
type TimelineItem struct {
	Title string `json:"title" bson:"title"`
	Text  string `json:"text" bson:"text"`
	Date  string `json:"date" bson:"date"`
}

type Project struct {
	Title              string `json:"title" bson:"title"`
	Category           string `json:"category" bson:"category"` // web|app|design
	Image              string `json:"image" bson:"image"`
	DetailsTitle       string `json:"detailsTitle" bson:"detailsTitle"`
	DetailsDescription string `json:"detailsDescription" bson:"detailsDescription"`
	Created            string `json:"created" bson:"created"`
	Technologies       string `json:"technologies" bson:"technologies"`
	Role               string `json:"role" bson:"role"`
	DemoURL            string `json:"demoUrl,omitempty" bson:"demoUrl,omitempty"`
}

// ServiceItem is a card in the services section.
type ServiceItem struct {
	Icon    string   `json:"icon" bson:"icon"`
	Title   string   `json:"title" bson:"title"`
	Bullets []string `json:"bullets" bson:"bullets"`
}

type Testimonial struct {
	Quote string `json:"quote" bson:"quote"`
	Date  string `json:"date" bson:"date"`
	Image string `json:"image" bson:"image"`
	Name  string `json:"name" bson:"name"`
	Role  string `json:"role" bson:"role"`
}

// Defaults returns the built-in default document. It is synthesized whenever
// no stored document exists and is what a reset writes back.
func Defaults() *PortfolioContent {
	today := time.Now().Format("1/2/2006")
	return &PortfolioContent{
		Name:            "Your Name",
		Role:            "Software Engineer / AWS Practitioner",
		Location:        "City, Country",
		Bio:             "I build modern, scalable applications with a focus on performance and delightful user experiences.",
		ProfileImage:    "",
		BackgroundImage: "",
		Email:           "user@gmail.com",
		Phone:           "999-888-777",
		Messenger:       "user.fb123",
		Socials: Socials{
			Facebook:  "https://www.facebook.com",
			Instagram: "https://www.instagram.com",
			Twitter:   "https://www.x.com",
			Github:    "https://github.com/",
			Linkedin:  "https://linkedin.com/",
			Youtube:   "https://youtube.com/",
		},
		About: About{
			Title:               "Hi, I'm Your Name",
			Description:         "I build modern, scalable applications with a focus on performance and delightful user experiences. I specialize in full-stack development and cloud technologies.",
			ExperienceYears:     "5+",
			ProjectsCompleted:   "50+",
			SupportAvailability: "Online 24/7",
		},
		SkillsTabs: []SkillTab{
			{ID: "frontend", Icon: "uil uil-brackets-curly", Title: "Frontend Developer", Subtitle: "More than 4 years", Items: []SkillItem{
				{Name: "HTML", Percent: 90}, {Name: "CSS", Percent: 80}, {Name: "Javascript", Percent: 60}, {Name: "Angular", Percent: 85},
			}},
			{ID: "design", Icon: "uil uil-swatchbook", Title: "UI / UX Design", Subtitle: "More than 5 years", Items: []SkillItem{
				{Name: "Figma", Percent: 90}, {Name: "Sketch", Percent: 80}, {Name: "Photoshop", Percent: 70},
			}},
			{ID: "backend", Icon: "uil uil-server-network", Title: "Backend Developer", Subtitle: "More than 2 years", Items: []SkillItem{
				{Name: "Node.js", Percent: 80}, {Name: "Python", Percent: 80}, {Name: "PostgreSQL", Percent: 70}, {Name: "AWS Lambda", Percent: 75},
			}},
		},
		Education: []TimelineItem{
			{Title: "University Name (Location)", Text: "Degree/Certificate", Date: "Start - End"},
		},
		Experience: []TimelineItem{
			{Title: "Company Name (Location)", Text: "Job Title", Date: "Start - End"},
		},
		Projects: []Project{
			{Title: "Project Name", Category: "web", Image: "/placeholder.svg", DetailsTitle: "Project Details", DetailsDescription: "Add your project description here...", Created: today, Technologies: "html css javascript", Role: "developer", DemoURL: ""},
		},
		Services: []ServiceItem{
			{Icon: "uil uil-web-grid", Title: "Service Name", Bullets: []string{"Service point 1", "Service point 2", "Service point 3"}},
		},
		Testimonials: []Testimonial{
			{Quote: "Add a testimonial from your client...", Date: today, Image: "/placeholder.svg", Name: "Client Name", Role: "Client Role"},
		},
	}
}

// MergeWithDefaults shallow-merges a raw serialized record over the default
// document: top-level keys present in raw win (an explicit null wins too,
// explicit overrides default, even when emptier), absent keys keep the
// default's value. Undecodable raw is an error; callers absorb it by falling
// back to Defaults.
func MergeWithDefaults(raw []byte) (*PortfolioContent, error) {
	var over map[string]json.RawMessage
	if err := json.Unmarshal(raw, &over); err != nil {
		return nil, err
	}

	base, err := json.Marshal(Defaults())
	if err != nil {
		return nil, err
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range over {
		merged[k] = v
	}

	buf, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	out := &PortfolioContent{}
	if err := json.Unmarshal(buf, out); err != nil {
		return nil, err
	}
	return out, nil
}
