package main

import (
	"flag"
	"log"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Operator tool: credits an organization's balance directly, writing the
// matching ledger row. Used when payments arrive out of band.
func main() {
	orgName := flag.String("org", "", "organization name to credit")
	amount := flag.Int64("amount", 0, "amount in whole baht (must be positive)")
	description := flag.String("desc", "manual top-up by operator", "ledger description")
	flag.Parse()

	if *orgName == "" || *amount <= 0 {
		log.Fatal("❌ Usage: grant-credits -org <name> -amount <baht> [-desc <text>]")
	}

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	orgRepo := repository.NewOrganizationRepo(db)
	creditRepo := repository.NewCreditRepo(db)

	// 3. Find the organization
	org, err := orgRepo.FindByName(*orgName)
	if err != nil {
		log.Fatalf("❌ Organization %q not found: %v", *orgName, err)
	}

	// 4. Lock, move the balance and append the ledger row atomically
	var newBalance int64
	err = db.Transaction(func(tx *gorm.DB) error {
		locked, err := orgRepo.LockByID(tx, org.ID)
		if err != nil {
			return err
		}
		newBalance = locked.CreditBalance + *amount
		if err := orgRepo.UpdateBalance(tx, locked.ID, newBalance, "operator"); err != nil {
			return err
		}
		return creditRepo.Append(tx, &model.CreditTransaction{
			OrganizationID:   locked.ID,
			OrganizationName: locked.Name,
			Type:             model.CreditAdd,
			Amount:           *amount,
			BalanceBefore:    locked.CreditBalance,
			BalanceAfter:     newBalance,
			Description:      *description,
			PerformedBy:      "operator",
			PerformedByName:  "operator",
		})
	})
	if err != nil {
		log.Fatalf("❌ Failed to grant credits: %v", err)
	}

	log.Printf("✅ Success! Credited ฿%d to %s, new balance ฿%d", *amount, org.Name, newBalance)
}
