// Package app composes the algorithm service.
//
// # Package Structure
//
//	internal/app/
//	├── application.go      # Application struct, wiring, and lifecycle
//	├── domain/user/        # User model
//	├── storage/            # Store interfaces and implementations
//	│   ├── memory/         # In-memory implementation
//	│   └── sqlstore/       # PostgreSQL and SQLite implementation
//	├── services/           # algorithms and users
//	├── httpapi/            # HTTP handlers and routing
//	├── metrics/            # Prometheus collectors
//	├── system/             # Lifecycle manager for background services
//	└── runtime/            # Process wiring: config, storage, HTTP server
//
// Services hold the business rules and never see HTTP types; handlers in
// httpapi translate service errors into status codes with errors.Is.
package app
