// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── users/           # Credential records and lookups
//	├── sessions/        # Durable session rows for the persisted strategy
//	└── audit/           # Authentication audit trail
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./userauth.db")
//
//	// Create domain-specific repositories
//	usersRepo := users.NewRepository(db.DB)
//	sessionsRepo := sessions.NewRepository(db.DB)
//	auditRepo := audit.NewRepository(db.DB)
//
//	// Use repositories
//	user, err := usersRepo.FindOne(map[string]any{"email": email})
//
// # Adding a New Domain
//
// To add a new domain:
//
//  1. Create a new sub-package: internal/database/<name>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Register its entities in database.NewDatabase's AutoMigrate call
package database
