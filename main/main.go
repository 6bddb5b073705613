package main

import (
	"log"
	"os"
	"rosterhub/activities"
	"rosterhub/db"
	"rosterhub/main/routes"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(429, "Too many requests. Try again in "+time.Until(info.ResetTime).String())
}

// Initialize the HTTP server
func main() {
	// Load .env
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	// Env Vars
	port := os.Getenv("PORT")
	dbName := os.Getenv("DB_FILE")

	// Init DB
	db.RosterDB, err = db.InitDB(dbName)
	if err != nil {
		log.Fatal("Error opening database:", err)
	}
	defer db.CloseDB(db.RosterDB)

	if err := activities.EnsureSchema(); err != nil {
		log.Fatal("Error ensuring schema:", err)
	}
	if err := activities.SeedActivities(); err != nil {
		log.Fatal("Error seeding activities:", err)
	}
	if username := os.Getenv("TEACHER_USERNAME"); username != "" {
		if err := activities.SeedTeacher(username, os.Getenv("TEACHER_PASSWORD")); err != nil {
			log.Fatal("Error seeding teacher account:", err)
		}
	}

	// Setup Gin
	r := gin.Default()

	// Rate Limit
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Second,
		Limit: 100, // This makes it so each ip can only make 100 requests per second
	})

	mw := ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: rateLimitErrorHandler,
		KeyFunc:      keyFunc,
	})

	r.Use(mw)

	// Browser clients may be served from elsewhere
	r.Use(cors.Default())

	routes.SetupAPIRoutes(r)

	if err := r.Run(port); err != nil {
		log.Fatal(err)
	}
}
