package content

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/vathanak/portfolio/internal/freetext"
)

// Document is the bilingual content file: one Profile per language.
type Document map[Language]*Profile

// Profile is everything the site shows for a single language.
type Profile struct {
	Name         string        `json:"name" yaml:"name"`
	Role         string        `json:"role" yaml:"role"`
	Quote        string        `json:"quote" yaml:"quote"`
	Email        string        `json:"email" yaml:"email"`
	Phone        string        `json:"phone" yaml:"phone"`
	Location     string        `json:"location" yaml:"location"`
	CVURL        string        `json:"cvUrl" yaml:"cvUrl"`
	About        About         `json:"about" yaml:"about"`
	Projects     []Project     `json:"projects" yaml:"projects"`
	Leadership   []Leadership  `json:"leadership" yaml:"leadership"`
	Certificates []Certificate `json:"certificates" yaml:"certificates"`
	Social       Social        `json:"social" yaml:"social"`
	Nav          NavItems      `json:"nav" yaml:"nav"`
	Buttons      Buttons       `json:"buttons" yaml:"buttons"`
}

type About struct {
	Intro      string           `json:"intro" yaml:"intro"`
	Bio        string           `json:"bio" yaml:"bio"`
	Education  []EducationItem  `json:"education" yaml:"education"`
	Experience []ExperienceItem `json:"experience" yaml:"experience"`
	Skills     Skills           `json:"skills" yaml:"skills"`
}

type EducationItem struct {
	Institution         string         `json:"institution" yaml:"institution"`
	Degree              string         `json:"degree" yaml:"degree"`
	Field               string         `json:"field" yaml:"field"`
	StartDate           string         `json:"startDate" yaml:"startDate"`
	EndDate             string         `json:"endDate" yaml:"endDate"`
	Description         freetext.Value `json:"description" yaml:"description"`
	DetailedDescription freetext.Value `json:"detailedDescription" yaml:"detailedDescription"`
}

// Summary is the description, or the detailed description when the former is absent.
func (e EducationItem) Summary() freetext.Value {
	return e.Description.Or(e.DetailedDescription)
}

type ExperienceItem struct {
	Position            string         `json:"position" yaml:"position"`
	Company             string         `json:"company" yaml:"company"`
	StartDate           string         `json:"startDate" yaml:"startDate"`
	EndDate             string         `json:"endDate" yaml:"endDate"`
	Description         freetext.Value `json:"description" yaml:"description"`
	DetailedDescription freetext.Value `json:"detailedDescription" yaml:"detailedDescription"`
}

func (e ExperienceItem) Summary() freetext.Value {
	return e.Description.Or(e.DetailedDescription)
}

type Skills struct {
	Programming []Skill  `json:"programming" yaml:"programming"`
	DataTools   []Skill  `json:"dataTools" yaml:"dataTools"`
	SoftSkills  []string `json:"softSkills" yaml:"softSkills"`
}

// Skill is a named skill with an optional logo. The content file may list a
// skill as a bare string; it decodes to a Skill without a logo.
type Skill struct {
	Name string `json:"name" yaml:"name"`
	Logo string `json:"logo,omitempty" yaml:"logo,omitempty"`
}

type skillFields Skill

func (s *Skill) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*s = Skill{Name: name}
		return nil
	}
	var f skillFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = Skill(f)
	return nil
}

func (s *Skill) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = Skill{Name: node.Value}
		return nil
	}
	var f skillFields
	if err := node.Decode(&f); err != nil {
		return err
	}
	*s = Skill(f)
	return nil
}

type Project struct {
	ID                  int            `json:"id" yaml:"id"`
	Title               string         `json:"title" yaml:"title"`
	Description         string         `json:"description" yaml:"description"`
	ProblemStatement    string         `json:"problemStatement,omitempty" yaml:"problemStatement"`
	DetailedDescription freetext.Value `json:"detailedDescription" yaml:"detailedDescription"`
	Technologies        []string       `json:"technologies,omitempty" yaml:"technologies"`
	Tags                []string       `json:"tags" yaml:"tags"`
	Image               string         `json:"image" yaml:"image"`
	GithubLink          string         `json:"githubLink,omitempty" yaml:"githubLink"`
	LiveLink            string         `json:"liveLink,omitempty" yaml:"liveLink"`
	Date                string         `json:"date" yaml:"date"`
}

type Leadership struct {
	ID                  int            `json:"id" yaml:"id"`
	Title               string         `json:"title" yaml:"title"`
	Organization        string         `json:"organization" yaml:"organization"`
	Description         freetext.Value `json:"description" yaml:"description"`
	DetailedDescription freetext.Value `json:"detailedDescription" yaml:"detailedDescription"`
	Impact              string         `json:"impact,omitempty" yaml:"impact"`
	Tags                []string       `json:"tags" yaml:"tags"`
	Image               string         `json:"image" yaml:"image"`
	Images              []string       `json:"images,omitempty" yaml:"images"`
	Date                string         `json:"date" yaml:"date"`
}

// PlaceholderImage is shown wherever an entry has no image.
const PlaceholderImage = "/placeholder.svg"

// Gallery returns the detail page images, falling back to the card image.
func (l Leadership) Gallery() []string {
	src := l.Images
	if len(src) == 0 {
		src = []string{l.Image}
	}
	out := make([]string, len(src))
	for i, img := range src {
		if img == "" {
			img = PlaceholderImage
		}
		out[i] = img
	}
	return out
}

type Certificate struct {
	ID            int    `json:"id" yaml:"id"`
	Title         string `json:"title" yaml:"title"`
	Issuer        string `json:"issuer" yaml:"issuer"`
	Date          string `json:"date" yaml:"date"`
	CredentialURL string `json:"credentialUrl" yaml:"credentialUrl"`
	Image         string `json:"image,omitempty" yaml:"image"`
}

type Social struct {
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
	Github   string `json:"github" yaml:"github"`
	Telegram string `json:"telegram" yaml:"telegram"`
	Twitter  string `json:"twitter" yaml:"twitter"`
}

type NavItems struct {
	Home         string `json:"home" yaml:"home"`
	About        string `json:"about" yaml:"about"`
	Projects     string `json:"projects" yaml:"projects"`
	Leadership   string `json:"leadership" yaml:"leadership"`
	Certificates string `json:"certificates" yaml:"certificates"`
	Contact      string `json:"contact" yaml:"contact"`
}

type Buttons struct {
	GetInTouch  string `json:"getInTouch" yaml:"getInTouch"`
	DownloadCV  string `json:"downloadCv" yaml:"downloadCv"`
	ViewCode    string `json:"viewCode" yaml:"viewCode"`
	ViewDetails string `json:"viewDetails" yaml:"viewDetails"`
	Send        string `json:"send" yaml:"send"`
	Success     string `json:"success" yaml:"success"`
}

// ProjectByID finds a project by id. A miss is not an error.
func (p *Profile) ProjectByID(id int) (Project, bool) {
	for _, project := range p.Projects {
		if project.ID == id {
			return project, true
		}
	}
	return Project{}, false
}

// LeadershipByID finds a leadership entry by id.
func (p *Profile) LeadershipByID(id int) (Leadership, bool) {
	for _, item := range p.Leadership {
		if item.ID == id {
			return item, true
		}
	}
	return Leadership{}, false
}

// CertificateByID finds a certificate by id.
func (p *Profile) CertificateByID(id int) (Certificate, bool) {
	for _, cert := range p.Certificates {
		if cert.ID == id {
			return cert, true
		}
	}
	return Certificate{}, false
}

// FeaturedProjects returns at most n projects in document order.
func (p *Profile) FeaturedProjects(n int) []Project {
	if n < len(p.Projects) {
		return p.Projects[:n]
	}
	return p.Projects
}

// FeaturedLeadership returns at most n leadership entries in document order.
func (p *Profile) FeaturedLeadership(n int) []Leadership {
	if n < len(p.Leadership) {
		return p.Leadership[:n]
	}
	return p.Leadership
}
