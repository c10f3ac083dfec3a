// Package config provides configuration management for the loot manager.
//
// It utilizes Viper for loading configuration from environment variables,
// an optional .env file, and command-line flags. Defaults live next to each
// field in a `default` struct tag and are registered by reflection.
//
// # Configuration Structure
//
//   - Scan: pack root, namespace, summary and diagnostics paths
//   - Loot: pool weights, roll ranges, ammo counts, guaranteed gun
//   - Datapack: output folder, namespace, chest placement
//   - Server: HTTP port and API key for the read-only API
//   - Database: catalog store connection (mysql or sqlite)
//   - Storage: S3/MinIO credentials and bucket for publishing
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Scan.Root, cfg.Loot.Weights.Pistol)
package config
