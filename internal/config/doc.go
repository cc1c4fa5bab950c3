// Package config provides simple, local-first configuration for fastclick.
//
// Configuration lives in the project's .fastclick/ directory:
//
//	.fastclick/
//	├── config.json        # Main configuration (committed to git)
//	├── .gitignore         # Keeps logs out of git
//	└── fastclick.log      # Written by the demo when running
//
// config.json holds flat settings:
//
//	{
//	  "window_ms": 500,
//	  "theme": "fire",
//	  "debug": false,
//	  "manifest": ".fastclick/bindings.yaml"
//	}
//
// Environment variables override the file for a single run without being
// saved back:
//
//	FASTCLICK_WINDOW_MS=800 FASTCLICK_DEBUG=true fastclick
//
// Example usage:
//
//	manager := config.NewManager("/path/to/project")
//	if err := manager.Load(); err != nil {
//		log.Fatal(err)
//	}
//
//	cfg := manager.Get()
//	fmt.Println("window:", cfg.Window())
//
//	// Update a setting
//	manager.Set("theme", "mono")
package config
