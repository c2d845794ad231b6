package domain

import "time"

// Seed builders return a fresh copy on every call so callers may mutate the
// result. They back a collection whose key is missing or unreadable.

var seedEpoch = time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

func seedDay(month time.Month, day int) time.Time {
	return time.Date(2025, month, day, 0, 0, 0, 0, time.UTC)
}

// SeedToolCategories returns the built-in tool categories
func SeedToolCategories() []Category {
	return []Category{
		{ID: "productivity", Name: "Productivity", Icon: "fa-bolt"},
		{ID: "design", Name: "Design", Icon: "fa-paint-brush"},
		{ID: "development", Name: "Development", Icon: "fa-code"},
		{ID: "utilities", Name: "Utilities", Icon: "fa-wrench"},
	}
}

// SeedTools returns the built-in catalogue
func SeedTools() []Tool {
	return []Tool{
		{ID: "1", Name: "Online Timer", Description: "Simple online timer and stopwatch", Icon: "fa-clock", Category: "productivity", Color: "bg-blue-500", URL: "#timer"},
		{ID: "2", Name: "Unit Converter", Description: "Convert length, weight, temperature and more", Icon: "fa-exchange-alt", Category: "utilities", Color: "bg-green-500", URL: "#converter"},
		{ID: "3", Name: "Code Formatter", Description: "Format source code for readability", Icon: "fa-code", Category: "development", Color: "bg-purple-500", URL: "#code-formatter"},
		{ID: "4", Name: "Image Compressor", Description: "Shrink images while keeping quality", Icon: "fa-compress-arrows-alt", Category: "design", Color: "bg-red-500", URL: "#image-compressor"},
		{ID: "5", Name: "Sticky Notes", Description: "Jot down ideas and todos", Icon: "fa-sticky-note", Category: "productivity", Color: "bg-yellow-500", URL: "#notes"},
		{ID: "6", Name: "Color Picker", Description: "Pick and generate color schemes", Icon: "fa-palette", Category: "design", Color: "bg-indigo-500", URL: "#color-picker"},
		{ID: "7", Name: "JSON Parser", Description: "Format and validate JSON", Icon: "fa-file-code", Category: "development", Color: "bg-teal-500", URL: "#json-parser"},
		{ID: "8", Name: "Password Generator", Description: "Create strong random passwords", Icon: "fa-key", Category: "utilities", Color: "bg-gray-500", URL: "#password-generator"},
		{ID: "9", Name: "Mind Map", Description: "Draw and edit mind maps online", Icon: "fa-project-diagram", Category: "productivity", Color: "bg-orange-500", URL: "#mind-map"},
		{ID: "10", Name: "QR Code Generator", Description: "Turn text or URLs into QR codes", Icon: "fa-qrcode", Category: "utilities", Color: "bg-pink-500", URL: "#qr-code"},
		{ID: "11", Name: "Regex Tester", Description: "Test and debug regular expressions", Icon: "fa-search", Category: "development", Color: "bg-cyan-500", URL: "#regex-tester"},
		{ID: "12", Name: "SVG Editor", Description: "Create and edit SVG graphics", Icon: "fa-draw-square", Category: "design", Color: "bg-lime-500", URL: "#svg-editor"},
	}
}

// SeedArticleCategories returns the built-in article categories
func SeedArticleCategories() []Category {
	return []Category{
		{ID: "news", Name: "News", Description: "Industry news and updates", Icon: "fa-newspaper"},
		{ID: "tutorial", Name: "Tutorials", Description: "Guides and how-tos", Icon: "fa-book"},
		{ID: "review", Name: "Reviews", Description: "Product reviews and impressions", Icon: "fa-star"},
		{ID: "website", Name: "About the site", Description: "Information about this site", Icon: "fa-info-circle"},
	}
}

// Pinned article ids restored by seed reconciliation
const (
	ArticleUpdateLogID    = "7"
	ArticleAnnouncementID = "15"
)

// SeedArticles returns the built-in editorial articles
func SeedArticles() []Article {
	article := func(id, title, content, category string, created time.Time) Article {
		return Article{ID: id, Title: title, Content: content, CategoryID: category, CreatedAt: created, UpdatedAt: created}
	}
	return []Article{
		article("1", "Welcome", "This is a sample article. Articles can be added, edited and removed from the admin console.", "news", seedDay(time.July, 1)),
		article("2", "Getting started", "This guide walks through the main features of the directory.", "tutorial", seedDay(time.July, 10)),
		article("3", "Help center", "Answers to common questions about the directory.", "website", seedDay(time.July, 20)),
		article("4", "About us", "A directory of practical tools, collected so they are easy to find and use.", "website", seedDay(time.July, 20)),
		article("5", "Contact", "Questions or suggestions are welcome through the guestbook.", "website", seedDay(time.July, 20)),
		article("6", "Site notice", "New presentation styles are available. All data is kept by the directory server.", "website", seedDay(time.August, 2)),
		article(ArticleUpdateLogID, "Update log", "### 2025-08-03\n\n- Database export and import for administrators\n- Maker programme with invitation codes\n- Guestbook replies", "website", seedDay(time.August, 3)),
		article(ArticleAnnouncementID, "Announcement", "Makers can now publish projects and form teams.", "news", seedDay(time.August, 5)),
	}
}

// SeedResourceCategories returns the built-in resource categories
func SeedResourceCategories() []Category {
	return []Category{
		{ID: "category_1", Name: "Learning", Description: "Courses and tutorials", Icon: "fa-book"},
		{ID: "category_2", Name: "Software", Description: "Installers for useful software", Icon: "fa-tools"},
		{ID: "category_3", Name: "Templates", Description: "Document templates", Icon: "fa-file-alt"},
	}
}

// SeedResources returns the built-in resources
func SeedResources() []ResourceItem {
	return []ResourceItem{
		{
			ID:          "resource_1",
			Name:        "React tutorial",
			Description: "Official React docs and a beginner course",
			CategoryID:  "category_1",
			Links: []CloudLink{
				{ID: "link_1", Name: "Drive A", URL: "https://pan.baidu.com/s/1reacttutorial"},
				{ID: "link_2", Name: "Drive B", URL: "https://aliyunpan.com/reacttutorial"},
			},
			CreatedAt: seedDay(time.July, 15),
			UpdatedAt: seedDay(time.July, 15),
		},
		{
			ID:          "resource_2",
			Name:        "VS Code installer",
			Description: "Latest VS Code installer with common extensions",
			CategoryID:  "category_2",
			Links: []CloudLink{
				{ID: "link_3", Name: "Drive C", URL: "https://cloud.tencent.com/vscode"},
				{ID: "link_4", Name: "Drive A", URL: "https://pan.baidu.com/s/2vscodeinstaller"},
			},
			CreatedAt: seedDay(time.July, 20),
			UpdatedAt: seedDay(time.July, 20),
		},
	}
}

// SeedMessages returns the initial guestbook, which is empty
func SeedMessages() []Message {
	return []Message{}
}

// SeedAuthCodes returns the built-in invitation codes
func SeedAuthCodes() []AuthCode {
	return []AuthCode{
		{ID: "auth_1", Code: "MAKER2025001", InitialPoints: 100, CreatedAt: seedEpoch},
		{ID: "auth_2", Code: "MAKER2025002", InitialPoints: 200, CreatedAt: seedEpoch},
		{ID: "auth_3", Code: "MAKER2025003", InitialPoints: 150, CreatedAt: seedEpoch},
	}
}

// SeedMakerPassword is the password of the built-in maker account
const SeedMakerPassword = "maker123"

// SeedMakers returns the built-in maker. passwordHash is the hash of
// SeedMakerPassword.
func SeedMakers(passwordHash string) []Maker {
	return []Maker{{
		ID:           "maker_1",
		Username:     "innovator",
		PasswordHash: passwordHash,
		Name:         "Innovator Team",
		Company:      "Future Tech Ltd.",
		Contact:      "contact@example.com",
		ProjectInfo:  "AI research and applications",
		IsAuthorized: true,
		AuthCode:     "MAKER2025001",
		Points:       100,
		JoinDate:     seedEpoch,
		Projects:     []string{"project_1"},
		Teams:        []string{},
	}}
}

// SeedProjects returns the built-in project
func SeedProjects() []Project {
	return []Project{{
		ID:           "project_1",
		Title:        "AI assistant",
		Description:  "An assistant app that helps people get work done",
		CreatorID:    "maker_1",
		CreatorName:  "Innovator Team",
		CreatedAt:    seedEpoch,
		Members:      []string{"maker_1"},
		Status:       ProjectOpen,
		Requirements: "Frontend, backend and ML engineers",
		Tags:         []string{"AI", "apps", "productivity"},
	}}
}

// SeedTeams returns the initial team list, which is empty
func SeedTeams() []Team {
	return []Team{}
}

// SeedStyles returns the built-in presentation styles
func SeedStyles() []AppStyle {
	return []AppStyle{
		{
			ID:          "default",
			Name:        "Default",
			Description: "Calm professional blues",
			IsDefault:   true,
			Variables: map[string]string{
				"primaryColor":     "bg-blue-600",
				"secondaryColor":   "bg-blue-100 dark:bg-blue-900/40",
				"accentColor":      "bg-indigo-500",
				"textColor":        "text-gray-800 dark:text-gray-200",
				"backgroundColor":  "bg-gray-50 dark:bg-gray-900",
				"cardColor":        "bg-white dark:bg-gray-800",
				"borderColor":      "border-blue-100 dark:border-blue-900/30",
				"borderRadius":     "rounded-xl",
				"shadow":           "shadow-md",
				"headerBg":         "bg-gradient-to-r from-blue-50 to-indigo-50 dark:from-gray-900 dark:to-blue-950",
				"primaryTextColor": "text-blue-700 dark:text-blue-400",
				"sectionBg":        "bg-blue-50 dark:bg-blue-900/20",
			},
		},
		{
			ID:          "modern",
			Name:        "Modern",
			Description: "Minimal neutral tones",
			Variables: map[string]string{
				"primaryColor":     "bg-gray-800 dark:bg-gray-700",
				"secondaryColor":   "bg-gray-100 dark:bg-gray-800",
				"accentColor":      "bg-amber-500",
				"textColor":        "text-gray-900 dark:text-gray-100",
				"backgroundColor":  "bg-gray-50 dark:bg-gray-950",
				"cardColor":        "bg-white dark:bg-gray-900",
				"borderColor":      "border-gray-200 dark:border-gray-800",
				"borderRadius":     "rounded-lg",
				"shadow":           "shadow-sm",
				"headerBg":         "bg-gradient-to-r from-gray-50 to-gray-100 dark:from-gray-950 dark:to-gray-900",
				"primaryTextColor": "text-gray-800 dark:text-gray-200",
				"sectionBg":        "bg-gray-50 dark:bg-gray-900",
			},
		},
		{
			ID:          "vibrant",
			Name:        "Vibrant",
			Description: "Bright orange and purple",
			Variables: map[string]string{
				"primaryColor":     "bg-gradient-to-r from-orange-500 to-pink-500",
				"secondaryColor":   "bg-orange-50 dark:bg-orange-900/30",
				"accentColor":      "bg-purple-500",
				"textColor":        "text-gray-900 dark:text-white",
				"backgroundColor":  "bg-gradient-to-br from-orange-50 to-pink-50 dark:from-gray-900 dark:to-purple-950",
				"cardColor":        "bg-white dark:bg-gray-800/80 backdrop-blur-sm",
				"borderColor":      "border-orange-100 dark:border-orange-900/30",
				"shadow":           "shadow-lg dark:shadow-orange-900/10",
				"borderRadius":     "rounded-2xl",
				"headerBg":         "bg-gradient-to-r from-orange-50 to-pink-50 dark:from-purple-950 dark:to-orange-950",
				"primaryTextColor": "text-orange-600 dark:text-orange-400",
				"sectionBg":        "bg-orange-50 dark:bg-orange-900/20",
			},
		},
	}
}
