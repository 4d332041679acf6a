package server

import "github.com/vathanak/portfolio/internal/content"

// uiText is page copy that is not part of the content document.
type uiText struct {
	Loading            string
	SwitchLanguage     string
	ToggleTheme        string
	AboutMe            string
	LearnMore          string
	Skills             string
	Programming        string
	DataTools          string
	SoftSkills         string
	Education          string
	Experience         string
	FeaturedProjects   string
	ViewAllProjects    string
	LeadershipImpact   string
	ViewAllLeadership  string
	ProjectNotFound    string
	BackToProjects     string
	LeadershipNotFound string
	BackToLeadership   string
	PageNotFound       string
	BackHome           string
	ProblemStatement   string
	ProjectOverview    string
	TechnologiesUsed   string
	LiveDemo           string
	ViewOnGithub       string
	Gallery            string
	Overview           string
	WhatIDid           string
	Impact             string
	ViewCredential     string
	ContactIntro       string
	CTATitle           string
	CTABody            string
	ProjectCTATitle    string
	ProjectCTABody     string
	CollabTitle        string
	CollabBody         string
	FormName           string
	FormEmail          string
	FormMessage        string
	NamePlaceholder    string
	EmailPlaceholder   string
	MessagePlaceholder string
	Sending            string
	SuccessTitle       string
	ErrorTitle         string
	SendFailed         string
	InvalidForm        string
	Unavailable        string
}

var texts = map[content.Language]*uiText{
	content.English: {
		Loading:            "Loading...",
		SwitchLanguage:     "Switch to Khmer",
		ToggleTheme:        "Toggle theme",
		AboutMe:            "About Me",
		LearnMore:          "Learn more about me",
		Skills:             "Skills & Technologies",
		Programming:        "Programming Languages",
		DataTools:          "Data Tools",
		SoftSkills:         "Soft Skills",
		Education:          "Education",
		Experience:         "Experience",
		FeaturedProjects:   "Featured Projects",
		ViewAllProjects:    "View all projects",
		LeadershipImpact:   "Leadership & Impact",
		ViewAllLeadership:  "View all leadership",
		ProjectNotFound:    "Project Not Found",
		BackToProjects:     "Back to Projects",
		LeadershipNotFound: "Experience Not Found",
		BackToLeadership:   "Back to Leadership",
		PageNotFound:       "Page Not Found",
		BackHome:           "Back to Home",
		ProblemStatement:   "Problem Statement",
		ProjectOverview:    "Project Overview",
		TechnologiesUsed:   "Technologies Used",
		LiveDemo:           "Live Demo",
		ViewOnGithub:       "View on GitHub",
		Gallery:            "Gallery",
		Overview:           "Overview",
		WhatIDid:           "What I Did",
		Impact:             "Impact",
		ViewCredential:     "View Credential",
		ContactIntro:       "Have a question or a project in mind? Send me a message.",
		CTATitle:           "Let's work together",
		CTABody:            "Interested in collaborating or discussing data science projects? I'd love to hear from you.",
		ProjectCTATitle:    "Interested in this project?",
		ProjectCTABody:     "Feel free to check out the code or contact me to discuss more about my work.",
		CollabTitle:        "Interested in collaboration?",
		CollabBody:         "Let's connect and discuss how we can work together to make a positive impact.",
		FormName:           "Name",
		FormEmail:          "Email",
		FormMessage:        "Message",
		NamePlaceholder:    "Your Name",
		EmailPlaceholder:   "your@email.com",
		MessagePlaceholder: "Your message here...",
		Sending:            "Sending...",
		SuccessTitle:       "Success",
		ErrorTitle:         "Error",
		SendFailed:         "Failed to send message. Please try again.",
		InvalidForm:        "Please fill in your name, a valid email and a message.",
		Unavailable:        "Content is unavailable right now. Please try again shortly.",
	},
	content.Khmer: {
		Loading:            "កំពុងផ្ទុក...",
		SwitchLanguage:     "ប្តូរទៅភាសាអង់គ្លេស",
		ToggleTheme:        "ប្តូរពណ៌ផ្ទៃ",
		AboutMe:            "អំពីខ្ញុំ",
		LearnMore:          "ស្វែងយល់បន្ថែមអំពីខ្ញុំ",
		Skills:             "ជំនាញ និងបច្ចេកវិទ្យា",
		Programming:        "ភាសាសរសេរកម្មវិធី",
		DataTools:          "ឧបករណ៍ទិន្នន័យ",
		SoftSkills:         "ជំនាញទន់",
		Education:          "ការអប់រំ",
		Experience:         "បទពិសោធន៍",
		FeaturedProjects:   "គម្រោងលេចធ្លោ",
		ViewAllProjects:    "មើលគម្រោងទាំងអស់",
		LeadershipImpact:   "ភាពជាអ្នកដឹកនាំ និងឥទ្ធិពល",
		ViewAllLeadership:  "មើលភាពជាអ្នកដឹកនាំទាំងអស់",
		ProjectNotFound:    "រកមិនឃើញគម្រោង",
		BackToProjects:     "ត្រឡប់ទៅគម្រោង",
		LeadershipNotFound: "រកមិនឃើញបទពិសោធន៍",
		BackToLeadership:   "ត្រឡប់ទៅភាពជាអ្នកដឹកនាំ",
		PageNotFound:       "រកមិនឃើញទំព័រ",
		BackHome:           "ត្រឡប់ទៅទំព័រដើម",
		ProblemStatement:   "បញ្ហា",
		ProjectOverview:    "ទិដ្ឋភាពទូទៅនៃគម្រោង",
		TechnologiesUsed:   "បច្ចេកវិទ្យាដែលបានប្រើ",
		LiveDemo:           "មើលផ្ទាល់",
		ViewOnGithub:       "មើលនៅលើ GitHub",
		Gallery:            "វិចិត្រសាល",
		Overview:           "ទិដ្ឋភាពទូទៅ",
		WhatIDid:           "អ្វីដែលខ្ញុំបានធ្វើ",
		Impact:             "ឥទ្ធិពល",
		ViewCredential:     "មើលវិញ្ញាបនបត្រ",
		ContactIntro:       "មានសំណួរ ឬគម្រោងណាមួយ? ផ្ញើសារមកខ្ញុំ។",
		CTATitle:           "តោះធ្វើការជាមួយគ្នា",
		CTABody:            "ចាប់អារម្មណ៍សហការ ឬពិភាក្សាអំពីគម្រោងវិទ្យាសាស្ត្រទិន្នន័យ? ខ្ញុំរីករាយស្តាប់ពីអ្នក។",
		ProjectCTATitle:    "ចាប់អារម្មណ៍លើគម្រោងនេះ?",
		ProjectCTABody:     "សូមពិនិត្យមើលកូដ ឬទាក់ទងមកខ្ញុំដើម្បីពិភាក្សាបន្ថែម។",
		CollabTitle:        "ចាប់អារម្មណ៍សហការ?",
		CollabBody:         "តោះភ្ជាប់ទំនាក់ទំនង ហើយពិភាក្សាពីរបៀបដែលយើងអាចធ្វើការជាមួយគ្នា។",
		FormName:           "ឈ្មោះ",
		FormEmail:          "អ៊ីមែល",
		FormMessage:        "សារ",
		NamePlaceholder:    "ឈ្មោះរបស់អ្នក",
		EmailPlaceholder:   "your@email.com",
		MessagePlaceholder: "សាររបស់អ្នកនៅទីនេះ...",
		Sending:            "កំពុងផ្ញើ...",
		SuccessTitle:       "ជោគជ័យ",
		ErrorTitle:         "កំហុស",
		SendFailed:         "ផ្ញើសារមិនបានសម្រេច។ សូមព្យាយាមម្តងទៀត។",
		InvalidForm:        "សូមបំពេញឈ្មោះ អ៊ីមែលត្រឹមត្រូវ និងសារ។",
		Unavailable:        "មាតិកាមិនអាចប្រើបាននៅពេលនេះទេ។ សូមព្យាយាមម្តងទៀតបន្តិចទៀត។",
	},
}

func textFor(lang content.Language) *uiText {
	if t, ok := texts[lang]; ok {
		return t
	}
	return texts[content.DefaultLanguage]
}
