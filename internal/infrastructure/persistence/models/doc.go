// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
//   - base.go: BaseModel and the model list used for auto-migration
//   - catalog.go: products and their effective-dated price history
//   - identity.go: companies and users
//   - sales.go: daily sales records
//   - target.go: monthly quantity targets
//
// Every instant is written in UTC. Sales dates are calendar dates stored as
// midnight UTC.
package models
