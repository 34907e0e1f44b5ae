package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	app.Post("/login", handler.Login)
	app.Post("/new_user", handler.NewUser)
	app.Post("/account_recovery", handler.AccountRecovery)

	app.Get("/cookie", handler.AuthRequired, handler.RenewCookie)
	app.Get("/logout", handler.AuthRequired, handler.Logout)

	app.Get("/search", handler.SearchNames)
	app.Get("/similar", handler.SimilarNames)

	app.Post("/preferences", handler.AuthRequired, handler.Preferences)
	app.Post("/liked", handler.AuthRequired, handler.LikeNames)
	app.Post("/disliked", handler.AuthRequired, handler.DislikeNames)
	app.Post("/unlike", handler.AuthRequired, handler.UnlikeNames)
	app.Post("/undislike", handler.AuthRequired, handler.UndislikeNames)
	app.Get("/likes_list", handler.AuthRequired, handler.LikesList)
	app.Get("/dislike_list", handler.AuthRequired, handler.DislikeList)

	app.Post("/new_group", handler.AuthRequired, handler.NewGroup)
	app.Post("/add_to_group", handler.AuthRequired, handler.AddToGroup)
	app.Delete("/delete_group", handler.AuthRequired, handler.DeleteGroup)
	app.Get("/group_liked", handler.AuthRequired, handler.GroupLiked)
	app.Get("/compare_likes", handler.AuthRequired, handler.CompareLikes)

	app.Delete("/delete_user", handler.AuthRequired, handler.DeleteUser)
}
