package api

import (
	"github.com/go-chi/chi/v5"
)

// setupAPIRoutes sets up API v1 routes. Partial updates answer on both
// PATCH and PUT.
func (s *RESTServer) setupAPIRoutes(r chi.Router) {
	// Public routes
	r.Get("/health", s.HandleHealth)
	r.Get("/metrics", s.HandleMetrics)
	if !s.config.IsProduction() {
		r.Get("/docs", s.HandleDocs)
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.HandleRegister)
		r.Post("/login", s.HandleLogin)
		r.Post("/refresh", s.HandleRefresh)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Use(s.companyContextMiddleware)

		// Current user
		r.Route("/users", func(r chi.Router) {
			r.Get("/me", s.HandleGetCurrentUser)
			r.Patch("/me", s.HandleUpdateCurrentUser)
			r.Put("/me", s.HandleUpdateCurrentUser)
		})

		// Companies and memberships
		r.Route("/companies", func(r chi.Router) {
			r.Get("/", s.HandleListCompanies)
			r.Post("/", s.HandleCreateCompany)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetCompany)
				r.Patch("/", s.HandleUpdateCompany)
				r.Put("/", s.HandleUpdateCompany)
				r.Delete("/", s.HandleDeleteCompany)
				r.Route("/members", func(r chi.Router) {
					r.Get("/", s.HandleListMembers)
					r.Post("/", s.HandleInviteMember)
					r.Patch("/{userId}", s.HandleUpdateMemberRole)
					r.Put("/{userId}", s.HandleUpdateMemberRole)
					r.Delete("/{userId}", s.HandleRemoveMember)
				})
			})
		})

		// Business profiles
		r.Route("/my-companies", func(r chi.Router) {
			r.Get("/", s.HandleListMyCompanies)
			r.Post("/", s.HandleCreateMyCompany)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetMyCompany)
				r.Patch("/", s.HandleUpdateMyCompany)
				r.Put("/", s.HandleUpdateMyCompany)
				r.Delete("/", s.HandleDeleteMyCompany)
			})
		})

		// Projects
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.HandleListProjects)
			r.Post("/", s.HandleCreateProject)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetProject)
				r.Patch("/", s.HandleUpdateProject)
				r.Put("/", s.HandleUpdateProject)
				r.Delete("/", s.HandleDeleteProject)
				r.Get("/tasks", s.HandleListTasks)
			})
		})

		// Tasks
		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", s.HandleCreateTask)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.HandleGetTask)
				r.Patch("/", s.HandleUpdateTask)
				r.Put("/", s.HandleUpdateTask)
				r.Delete("/", s.HandleDeleteTask)
				r.Get("/comments", s.HandleListTaskComments)
				r.Post("/comments", s.HandleCreateTaskComment)
			})
		})

		// Comments
		r.Route("/comments", func(r chi.Router) {
			r.Route("/{id}", func(r chi.Router) {
				r.Patch("/", s.HandleUpdateTaskComment)
				r.Put("/", s.HandleUpdateTaskComment)
				r.Delete("/", s.HandleDeleteTaskComment)
				r.Get("/replies", s.HandleListCommentReplies)
				r.Post("/reactions", s.HandleAddCommentReaction)
				r.Delete("/reactions", s.HandleRemoveCommentReaction)
			})
		})

		// PDF templates and generation
		r.Route("/pdf", func(r chi.Router) {
			r.Route("/templates", func(r chi.Router) {
				r.Get("/", s.HandleListTemplates)
				r.Post("/", s.HandleCreateTemplate)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.HandleGetTemplate)
					r.Patch("/", s.HandleUpdateTemplate)
					r.Put("/", s.HandleUpdateTemplate)
					r.Delete("/", s.HandleDeleteTemplate)
				})
			})
			r.Post("/generate", s.HandleGenerateDocument)
			r.Route("/generated", func(r chi.Router) {
				r.Get("/", s.HandleListGeneratedDocuments)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.HandleGetGeneratedDocument)
					r.Delete("/", s.HandleDeleteGeneratedDocument)
				})
			})
		})

		// AI assistant
		r.Route("/ai", func(r chi.Router) {
			r.Route("/conversations", func(r chi.Router) {
				r.Get("/", s.HandleListConversations)
				r.Post("/", s.HandleCreateConversation)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.HandleGetConversation)
					r.Patch("/", s.HandleUpdateConversation)
					r.Put("/", s.HandleUpdateConversation)
					r.Delete("/", s.HandleDeleteConversation)
					r.Get("/messages", s.HandleListConversationMessages)
					r.Post("/messages", s.HandleSendMessage)
				})
			})
			r.Post("/chat", s.HandleChat)
			r.Post("/suggest-fields", s.HandleSuggestFields)
			r.Post("/analyze-document", s.HandleAnalyzeDocument)
			r.Post("/project-description", s.HandleProjectDescription)
			r.Post("/suggest-tasks", s.HandleSuggestTasks)
			r.Post("/summarize", s.HandleSummarize)
			r.Post("/translate", s.HandleTranslate)
		})
	})
}
