package db

import (
	"log"

	"sportconnect/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres and returns the handle. The caller owns the
// handle and passes it into handlers; there is no package-level DB.
func Open(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	log.Println("Database connection established")
	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Like{},
		&models.Event{},
		&models.UserEvent{},
		&models.Community{},
		&models.UserCommunity{},
		&models.Message{},
	)
}

// SeedCommunities creates the six starter communities. Guarded by an
// existence check so repeated startups never duplicate them.
func SeedCommunities(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&models.Community{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Communities already seeded, skipping")
		return nil
	}

	communities := []models.Community{
		{Name: "Hoops Hype", Sport: "Basketball", Emoji: "🏀"},
		{Name: "Trailblazers Run Club", Sport: "Running", Emoji: "🏃‍♂️"},
		{Name: "Urban Cyclists", Sport: "Cycling", Emoji: "🚴‍♀️"},
		{Name: "Volleyball Vibes", Sport: "Volleyball", Emoji: "🏐"},
		{Name: "Tennis Titans", Sport: "Tennis", Emoji: "🎾"},
		{Name: "Swim Squad", Sport: "Swimming", Emoji: "🏊‍♂️"},
	}

	for _, community := range communities {
		if err := gdb.Create(&community).Error; err != nil {
			log.Printf("Failed to create community %s: %v", community.Name, err)
			return err
		}
	}
	log.Println("Initial communities created successfully")
	return nil
}
