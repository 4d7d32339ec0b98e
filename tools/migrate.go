package main

import (
	"context"
	"fmt"
	"os"

	"travel-agency/config"
	"travel-agency/constants"
	"travel-agency/database"
	"travel-agency/models/user_role"
	"travel-agency/repository"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  go run tools/migrate.go migrate                       - Create or update all tables")
	fmt.Println("  go run tools/migrate.go grant <user_id> [role] [email] - Give an identity a back office role (default super_admin)")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg := config.Load()
	command := os.Args[1]

	switch command {
	case "migrate":
		fmt.Println("🚀 Running database migrations...")
		if _, err := database.InitDB(cfg); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Migration completed successfully!")

	case "grant":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		row := &user_role.UserRole{UserID: os.Args[2], Role: constants.RoleSuperAdmin, CreatedBy: "cli"}
		if len(os.Args) > 3 {
			row.Role = os.Args[3]
		}
		if len(os.Args) > 4 {
			row.Email = os.Args[4]
		}
		if !constants.IsValidRole(row.Role) {
			fmt.Printf("❌ Unknown role %q, expected one of %v\n", row.Role, constants.AssignableRoles)
			os.Exit(1)
		}

		db, err := database.InitDB(cfg)
		if err != nil {
			fmt.Printf("❌ Database unavailable: %v\n", err)
			os.Exit(1)
		}
		if err := repository.New(db).AssignRole(context.Background(), row); err != nil {
			fmt.Printf("❌ Failed to grant role: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ %s is now %s\n", row.UserID, row.Role)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		usage()
	}
}
