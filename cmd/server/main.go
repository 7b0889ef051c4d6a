package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/meur/lorequiz/internal/api"
	"github.com/meur/lorequiz/internal/storage"
)

// defaultAscendancyIDs matches the catalog this project ships with. The
// set is plain configuration: a reshaped catalog only needs a new flag
// value, not a code change.
const defaultAscendancyIDs = "27,28,29,30,31,32,33,34,35,36,37,38,39,40,41,43,44,45"

func main() {
	// Parse flags
	port := flag.String("port", getEnv("PORT", "8080"), "Server port")
	dbPath := flag.String("db", getEnv("DB_PATH", "./lorequiz.db"), "SQLite database path")
	ascendancyIDs := flag.String("ascendancy-ids", getEnv("ASCENDANCY_TYPE_IDS", defaultAscendancyIDs),
		"Comma-separated item type ids treated as ascendancy classes")
	staticDir := flag.String("static", getEnv("STATIC_DIR", "./wwwroot"), "Static assets directory")
	flag.Parse()

	typeIDs, err := parseIDList(*ascendancyIDs)
	if err != nil {
		log.Fatalf("Invalid -ascendancy-ids: %v", err)
	}

	// Initialize storage
	store, err := storage.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	// Create router
	srv := api.New(store, typeIDs)

	// Serve the quiz frontend
	FileServer(srv.Router(), "/", http.Dir(*staticDir))

	log.Printf("LoreQuiz API starting on http://localhost:%s", *port)
	log.Printf("Database: %s", *dbPath)

	if err := http.ListenAndServe(":"+*port, srv); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseIDList(s string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// FileServer conveniently sets up a http.FileServer handler to serve
// static files from a http.FileSystem.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", 301).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}
