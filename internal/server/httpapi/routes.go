package httpapi

func (s *Server) routes() {
	app := s.app

	app.Get("/healthz", s.health)
	app.Get("/.well-known/oauth-authorization-server", s.discovery)

	a := app.Group("/auth")
	a.Post("/register", s.register)
	a.Post("/login", s.login)

	app.Get("/users/me", s.authenticate, s.requireActive, s.me)

	albums := app.Group("/albums", s.authenticate)
	albums.Get("/", s.listAlbums)
	albums.Post("/", s.createAlbum)
	albums.Post("/:id/photos", s.addPhoto)

	messages := app.Group("/messages", s.authenticate)
	messages.Get("/", s.listMessages)
	messages.Post("/", s.createMessage)

	tasks := app.Group("/tasks", s.authenticate)
	tasks.Get("/", s.listTasks)
	tasks.Post("/", s.createTask)
	tasks.Post("/:id/complete", s.completeTask)

	events := app.Group("/events", s.authenticate)
	events.Get("/", s.listEvents)
	events.Post("/", s.createEvent)

	admin := app.Group("/admin", s.authenticate, s.requireAdmin)
	admin.Get("/users", s.adminListUsers)
	admin.Get("/users/:id", s.adminGetUser)
	admin.Delete("/users/:id", s.adminDeleteUser)
	admin.Get("/albums", s.adminListAlbums)
	admin.Delete("/albums/:id", s.adminDeleteAlbum)
	admin.Get("/messages", s.adminListMessages)
	admin.Delete("/messages/:id", s.adminDeleteMessage)
	admin.Post("/messages/:id/moderate", s.adminModerateMessage)
	admin.Get("/stats", s.adminStats)
	admin.Get("/settings", s.adminGetSettings)
	admin.Put("/settings", s.adminUpdateSettings)
}
