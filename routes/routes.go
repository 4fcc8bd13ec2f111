package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"mise/ai"
	"mise/auth"
	"mise/chat"
	"mise/encyclopedia"
	"mise/foodcost"
	"mise/home"
	"mise/middleware"
	"mise/pairing"
	"mise/pricetracker"
	"mise/profile"
	"mise/projects"
	"mise/ratelim"
	"mise/recipes"
	"mise/social"
	"mise/suggestions"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/v1/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/v1/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/v1/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/v1/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
	router.GET("/api/v1/auth/session", middleware.Authenticate(auth.GetSession))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/v1/profile/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/v1/profile/edit", middleware.Authenticate(profile.EditProfile))
	router.PUT("/api/v1/profile/avatar", middleware.Authenticate(profile.EditProfilePic))
	router.PUT("/api/v1/profile/plan", middleware.Authenticate(profile.UpdatePlan))
	router.DELETE("/api/v1/profile/delete", middleware.Authenticate(profile.DeleteProfile))
	router.GET("/api/v1/user/:username", middleware.OptionalAuth(profile.GetUserProfile))

	router.PUT("/api/v1/follows/:id", middleware.Authenticate(profile.ToggleFollow))
	router.DELETE("/api/v1/follows/:id", middleware.Authenticate(profile.ToggleUnFollow))
	router.GET("/api/v1/follows/:id/status", middleware.Authenticate(profile.DoesFollow))
	router.GET("/api/v1/followers/:id", middleware.OptionalAuth(profile.GetFollowers))
	router.GET("/api/v1/following/:id", middleware.OptionalAuth(profile.GetFollowing))

	router.GET("/api/v1/suggestions/chefs", middleware.Authenticate(suggestions.SuggestChefs))
}

func AddRecipeRoutes(router *httprouter.Router) {
	router.GET("/api/v1/recipes/tags", ratelim.RateLimit(recipes.GetRecipeTags))
	router.GET("/api/v1/recipes", middleware.OptionalAuth(recipes.GetRecipes))
	router.GET("/api/v1/recipes/recipe/:id", middleware.OptionalAuth(recipes.GetRecipe))
	router.POST("/api/v1/recipes", middleware.Authenticate(recipes.CreateRecipe))
	router.PUT("/api/v1/recipes/recipe/:id", middleware.Authenticate(recipes.UpdateRecipe))
	router.DELETE("/api/v1/recipes/recipe/:id", middleware.Authenticate(recipes.DeleteRecipe))
	router.POST("/api/v1/recipes/recipe/:id/images", middleware.Authenticate(recipes.UploadImages))
	router.POST("/api/v1/recipes/recipe/:id/share", middleware.Authenticate(recipes.ShareRecipe))
	router.DELETE("/api/v1/recipes/recipe/:id/share", middleware.Authenticate(recipes.UnshareRecipe))
	router.GET("/api/v1/recipes/recipe/:id/share", middleware.Authenticate(recipes.SharedStatus))
}

func AddProjectRoutes(router *httprouter.Router) {
	router.GET("/api/v1/projects", middleware.Authenticate(projects.GetProjects))
	router.GET("/api/v1/projects/:id", middleware.Authenticate(projects.GetProject))
	router.POST("/api/v1/projects", middleware.Authenticate(projects.CreateProject))
	router.PUT("/api/v1/projects/:id", middleware.Authenticate(projects.UpdateProject))
	router.DELETE("/api/v1/projects/:id", middleware.Authenticate(projects.DeleteProject))
	router.POST("/api/v1/projects/:id/items/:itemType/:itemId", middleware.Authenticate(projects.LinkItem))
	router.DELETE("/api/v1/projects/:id/items/:itemType/:itemId", middleware.Authenticate(projects.UnlinkItem))
}

func AddSocialRoutes(router *httprouter.Router) {
	router.GET("/api/v1/feed", middleware.OptionalAuth(social.GetFeed))
	router.PUT("/api/v1/feed/post/:id/like", middleware.Authenticate(social.ToggleLike))
	router.PUT("/api/v1/feed/post/:id/save", middleware.Authenticate(social.ToggleSave))
	router.GET("/api/v1/feed/post/:id/comments", middleware.OptionalAuth(social.GetComments))
	router.POST("/api/v1/feed/post/:id/comments", middleware.Authenticate(social.CreateComment))
	router.DELETE("/api/v1/comments/:commentId", middleware.Authenticate(social.DeleteComment))
}

func AddFoodCostRoutes(router *httprouter.Router) {
	router.POST("/api/v1/foodcosts/compute", middleware.OptionalAuth(foodcost.ComputeSheet))
	router.GET("/api/v1/foodcosts", middleware.Authenticate(foodcost.GetSheets))
	router.GET("/api/v1/foodcosts/:id", middleware.Authenticate(foodcost.GetSheet))
	router.POST("/api/v1/foodcosts", middleware.Authenticate(foodcost.CreateSheet))
	router.PUT("/api/v1/foodcosts/:id", middleware.Authenticate(foodcost.UpdateSheet))
	router.DELETE("/api/v1/foodcosts/:id", middleware.Authenticate(foodcost.DeleteSheet))
	router.POST("/api/v1/foodcosts/optimize", middleware.Authenticate(pairing.Optimize))
}

func AddPriceRoutes(router *httprouter.Router) {
	router.GET("/api/v1/prices", ratelim.RateLimit(pricetracker.GetPrices))
	router.GET("/api/v1/prices/meta", ratelim.RateLimit(pricetracker.GetPriceMeta))
}

func AddEncyclopediaRoutes(router *httprouter.Router) {
	router.GET("/api/v1/encyclopedia/categories", ratelim.RateLimit(encyclopedia.GetCategories))
	router.GET("/api/v1/encyclopedia/topics/:category", ratelim.RateLimit(encyclopedia.GetTopics))
	router.GET("/api/v1/encyclopedia/article/:topicID", ratelim.RateLimit(encyclopedia.GetArticle))
}

func AddPairingRoutes(router *httprouter.Router) {
	router.POST("/api/v1/pairings/analyze", middleware.Authenticate(pairing.AnalyzePairing))
	router.GET("/api/v1/pairings", middleware.Authenticate(pairing.GetPairings))
	router.GET("/api/v1/pairings/:id", middleware.Authenticate(pairing.GetPairing))
	router.DELETE("/api/v1/pairings/:id", middleware.Authenticate(pairing.DeletePairing))
}

func AddAssistantRoutes(router *httprouter.Router) {
	router.POST("/api/v1/assistant/chat", middleware.Authenticate(ai.Chat))
	router.POST("/api/v1/assistant/speak", middleware.Authenticate(ai.Speak))
}

func AddChatRoutes(router *httprouter.Router) {
	router.GET("/api/v1/chats/all", middleware.Authenticate(chat.GetUserChats))
	router.POST("/api/v1/chats/start", middleware.Authenticate(chat.StartChat))
	router.GET("/api/v1/chats/chat/:chatId/messages", middleware.Authenticate(chat.GetMessages))
	router.POST("/api/v1/chats/chat/:chatId/message", middleware.Authenticate(chat.SendMessage))
	router.GET("/api/v1/chats/chat/:chatId/search", middleware.Authenticate(chat.SearchMessages))
	router.POST("/api/v1/chats/chat/:chatId/read", middleware.Authenticate(chat.MarkRead))
	router.PATCH("/api/v1/messages/:messageId", middleware.Authenticate(chat.EditMessage))
	router.DELETE("/api/v1/messages/:messageId", middleware.Authenticate(chat.DeleteMessage))
	router.GET("/api/v1/messages/unread-count", middleware.Authenticate(chat.GetUnreadCounts))
	router.GET("/ws/chat", middleware.Authenticate(chat.HandleWebSocket))
}

func AddHomeRoutes(router *httprouter.Router) {
	router.GET("/api/v1/home/:section", ratelim.RateLimit(home.GetHomeContent))
}
