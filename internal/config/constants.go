package config

const (
	// DefaultDatabasePath is the default path for the local photo catalog
	DefaultDatabasePath = "./photoalbum.db"

	// DefaultPhotoServiceOrigin is where the photo service listens in development
	DefaultPhotoServiceOrigin = "http://localhost:5000"
)
