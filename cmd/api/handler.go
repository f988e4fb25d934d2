package api

import (
	"log"

	reportUsecasePkg "emailsmart-backend/internal/report/usecase"
	"emailsmart-backend/pkg/chroma"
	"emailsmart-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	reportUsecase reportUsecasePkg.ReportUsecase
	config        *config.Config
}

func NewHandler(reportUc reportUsecasePkg.ReportUsecase, cfg *config.Config) *Handler {
	// Initialize Chroma client for semantic report search
	if cfg.ChromaAPIKey != "" {
		chromaClient, err := chroma.NewChromaClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Chroma client: %v. Semantic search will not be available.", err)
		} else {
			reportUc.SetVectorSearchService(chromaClient)
			log.Println("Chroma client initialized successfully")
		}
	} else {
		log.Println("Warning: CHROMA_API_KEY not set. Search will use keyword matching.")
	}

	return &Handler{
		reportUsecase: reportUc,
		config:        cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Gemini-Key")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Setup routes
	SetupRoutes(r, h.reportUsecase)

	return r.Run(addr)
}
