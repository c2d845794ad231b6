package repository

// Storage keys. The collection keys double as the collection names carried
// by change events.
const (
	KeyTools              = "tools"
	KeyToolCategories     = "categories"
	KeyArticles           = "articles"
	KeyArticleCategories  = "articleCategories"
	KeyResources          = "resources"
	KeyResourceCategories = "resourceCategories"
	KeyMessages           = "messages"
	KeyMakers             = "makers"
	KeyAuthCodes          = "makerAuthCodes"
	KeyProjects           = "makerProjects"
	KeyTeams              = "makerTeams"
	KeyStyles             = "appStyles"

	// KeyCurrentStyle holds the id of the selected style as a plain string
	KeyCurrentStyle = "currentStyleId"
)

// CollectionKeys lists every collection key in export order
func CollectionKeys() []string {
	return []string{
		KeyTools,
		KeyToolCategories,
		KeyArticles,
		KeyArticleCategories,
		KeyResources,
		KeyResourceCategories,
		KeyStyles,
		KeyMessages,
		KeyMakers,
		KeyAuthCodes,
		KeyProjects,
		KeyTeams,
	}
}

// Id prefixes for generated ids
const (
	prefixTool             = "tool"
	prefixToolCategory     = "cat"
	prefixArticle          = "article"
	prefixArticleCategory  = "article_cat"
	prefixResource         = "res"
	prefixResourceCategory = "res_cat"
	prefixLink             = "link"
	prefixMessage          = "msg"
	prefixReply            = "reply"
	prefixMaker            = "maker"
	prefixAuthCode         = "auth"
	prefixProject          = "project"
	prefixTeam             = "team"
	prefixStyle            = "style"
)
