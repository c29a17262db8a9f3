package main

import (
	"html/template"
	"log"
	"os"
	"path/filepath"

	"sportconnect/internal/db"
	"sportconnect/internal/middleware"
	"sportconnect/internal/router"
	"sportconnect/internal/services"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=sportconnect port=5432 sslmode=disable"
	}

	gdb, err := db.Open(dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := db.SeedCommunities(gdb); err != nil {
		log.Fatalf("Failed to seed communities: %v", err)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./web/uploads"
	}
	uploads, err := services.NewUploadService(uploadDir)
	if err != nil {
		log.Fatalf("Failed to set up upload dir: %v", err)
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("sportconnect_session", store))

	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")
	r.Static("/uploads", uploadDir)

	// Middleware
	r.Use(middleware.LoadUser(gdb))

	// Routes
	router.RegisterRoutes(r, gdb, uploads)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("SportConnect server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+1)
		files = append(files, layouts...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
	}

	// Manual registration to ensure keys match handler expectation
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/signup.html", funcMap, assemble(templatesDir+"/views/auth/signup.html")...)

	r.AddFromFilesFuncs("feed.html", funcMap, assemble(templatesDir+"/views/feed.html")...)
	r.AddFromFilesFuncs("events.html", funcMap, assemble(templatesDir+"/views/events.html")...)
	r.AddFromFilesFuncs("communities.html", funcMap, assemble(templatesDir+"/views/communities.html")...)
	r.AddFromFilesFuncs("messages.html", funcMap, assemble(templatesDir+"/views/messages.html")...)
	r.AddFromFilesFuncs("chat.html", funcMap, assemble(templatesDir+"/views/chat.html")...)
	r.AddFromFilesFuncs("profile.html", funcMap, assemble(templatesDir+"/views/profile.html")...)

	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
