package main

import (
	"context"
	"time"

	"healthcare-portal/cmd/bootstrap"
	"healthcare-portal/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

const demoPassword = "123456"

var demoUsers = []struct {
	name  string
	email string
	role  entity.Role
}{
	{"Admin One", "admin@test.com", entity.RoleAdmin},
	{"Dr John", "doctor1@test.com", entity.RoleDoctor},
	{"Dr Mary", "doctor2@test.com", entity.RoleDoctor},
	{"Patient One", "patient@test.com", entity.RolePatient},
}

func main() {
	app, err := bootstrap.NewForSeeding()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, u := range demoUsers {
		created, err := app.UserUsecase.SeedUser(ctx, u.name, u.email, demoPassword, u.role)
		if err != nil {
			app.Log.Errorf("Failed to seed %s: %v", u.email, err)
			continue
		}
		if !created {
			app.Log.Infof("Skipped %s: already exists", u.email)
			continue
		}
		app.Log.WithField("role", u.role).Infof("Seeded %s", u.email)
	}

	app.Log.Info("Seeding complete")
}
