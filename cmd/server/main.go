package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"roomreserve/internal/api"
	"roomreserve/internal/booking"
	"roomreserve/internal/repository"
	"roomreserve/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()

	hours := booking.DefaultHours
	if open, close := os.Getenv("OPEN_TIME"), os.Getenv("CLOSE_TIME"); open != "" || close != "" {
		if open == "" {
			open = booking.DefaultHours.OpenString()
		}
		if close == "" {
			close = booking.DefaultHours.CloseString()
		}
		parsed, err := booking.ParseOperatingHours(open, close)
		if err != nil {
			log.Fatalf("Invalid operating hours: %v", err)
		}
		hours = parsed
	}

	catalog, store := buildStorage()

	svc := service.NewReservationService(catalog, store, hours, time.Now)
	jobSvc := service.NewJobService(store, time.Now)

	c := cron.New()
	if _, err := c.AddFunc("@every 5m", func() {
		if err := jobSvc.CompleteElapsedReservations(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule completion job: %v", err)
	}
	c.Start()
	defer c.Stop()

	roomHandler := api.NewRoomHandler(svc)
	reservationHandler := api.NewReservationHandler(svc)

	r := mux.NewRouter()
	r.HandleFunc("/api/rooms", roomHandler.SearchRooms).Methods("GET")
	r.HandleFunc("/api/reservations", reservationHandler.CreateReservation).Methods("POST")
	r.HandleFunc("/api/reservations", reservationHandler.ListReservations).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", reservationHandler.GetReservation).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", reservationHandler.RescheduleReservation).Methods("PUT")
	r.HandleFunc("/api/reservations/{id}", reservationHandler.CancelReservation).Methods("DELETE")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s (operating hours %s-%s)", port, hours.OpenString(), hours.CloseString())
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}

// buildStorage wires Postgres when DATABASE_URL is set, otherwise the seeded
// in-memory store.
func buildStorage() (service.RoomCatalog, service.ReservationStore) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Println("DATABASE_URL not set, using in-memory store with seed rooms")
		return repository.NewMemoryCatalog(repository.SeedRooms()), repository.NewMemoryStore()
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	return repository.NewRoomRepository(db), repository.NewReservationRepository(db)
}
