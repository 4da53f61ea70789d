package main

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/Rafael-Rueda/academic-manager-api/internal/config"
	"github.com/Rafael-Rueda/academic-manager-api/internal/db"
	"github.com/Rafael-Rueda/academic-manager-api/internal/model"
	"github.com/Rafael-Rueda/academic-manager-api/internal/repository"
)

type seedCourse struct {
	title       string
	description string
	price       int64
}

var seedUsers = []string{
	"Ana Souza", "Bruno Lima", "Carla Mendes", "Diego Ferreira", "Elisa Rocha",
}

var seedCourses = []seedCourse{
	{"Introduction to Databases", "Relational modeling, SQL and indexing basics.", 120},
	{"Web Development with Go", "HTTP services, middleware and testing.", 150},
	{"Linear Algebra Fundamentals", "Vectors, matrices and transformations.", 90},
	{"Distributed Systems Primer", "Consistency, replication and messaging.", 180},
	{"Software Testing Essentials", "Unit, integration and end-to-end testing.", 110},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	courseRepo := repository.NewCourseRepository(gormDB)
	enrollmentRepo := repository.NewEnrollmentRepository(gormDB)

	users := make([]*model.User, 0, len(seedUsers))
	for i, name := range seedUsers {
		user := &model.User{
			Name:      name,
			Email:     fmt.Sprintf("student%d@example.com", i+1),
			Confirmed: true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to seed user %q: %v", name, err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	courses := make([]*model.Course, 0, len(seedCourses))
	for _, sc := range seedCourses {
		description := sc.description
		price := decimal.NewFromInt(sc.price)
		course := &model.Course{
			Title:       sc.title,
			Description: &description,
			Price:       &price,
		}
		if err := courseRepo.Create(ctx, course); err != nil {
			log.Fatalf("Failed to seed course %q: %v", sc.title, err)
		}
		courses = append(courses, course)
	}
	log.Printf("Seeded %d courses", len(courses))

	// Two enrollments per course, rotating through the users.
	pairs := [][2]int{
		{0, 0}, {0, 1},
		{1, 2}, {1, 3},
		{2, 4}, {2, 0},
		{3, 1}, {3, 2},
		{4, 3}, {4, 4},
	}
	for _, pair := range pairs {
		enrollment := &model.Enrollment{
			CourseID: courses[pair[0]].ID,
			UserID:   users[pair[1]].ID,
		}
		if err := enrollmentRepo.Create(ctx, enrollment); err != nil {
			log.Fatalf("Failed to seed enrollment: %v", err)
		}
	}
	log.Printf("Seeded %d enrollments", len(pairs))

	log.Println("Seed completed successfully")
}
