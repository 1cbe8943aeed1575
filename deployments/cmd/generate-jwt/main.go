package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/auth"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/config"
)

func main() {
	userID := flag.String("user", "550e8400-e29b-41d4-a716-446655440000", "User ID (UUID)")
	email := flag.String("email", "test@example.com", "Email address")
	role := flag.String("role", "PATIENT", "Role (DONOR|PATIENT|HOSPITAL|ADMIN)")
	flag.Parse()

	// Загружаем конфигурацию
	cfg := config.Load()

	// Создаем JWT сервис
	jwtService := auth.NewJWTService(cfg.JWT)

	// Генерируем токен
	token, err := jwtService.GenerateToken(*userID, *email, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating JWT token: %v\n", err)
		os.Exit(1)
	}

	// Выводим токен
	fmt.Printf("\n✅ JWT Token generated successfully!\n\n")
	fmt.Printf("User ID:   %s\n", *userID)
	fmt.Printf("Email:     %s\n", *email)
	fmt.Printf("Role:      %s\n", *role)
	fmt.Printf("\nToken:\n%s\n", token)
	fmt.Printf("\n📋 Copy this for API requests:\n")
	fmt.Printf("Authorization: Bearer %s\n", token)
	fmt.Printf("\n💡 Example curl:\n")
	fmt.Printf("curl -X POST http://localhost:3000/requests \\\n")
	fmt.Printf("  -H 'Authorization: Bearer %s' \\\n", token)
	fmt.Printf("  -H 'Content-Type: application/json' \\\n")
	fmt.Printf("  -d '{\n")
	fmt.Printf("    \"request_type\": \"BLOOD\",\n")
	fmt.Printf("    \"blood_group\": \"O+\",\n")
	fmt.Printf("    \"quantity_ml\": 450,\n")
	fmt.Printf("    \"urgency\": \"URGENT\",\n")
	fmt.Printf("    \"reason\": \"scheduled surgery\"\n")
	fmt.Printf("  }'\n\n")
}
