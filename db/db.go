package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"wtg/config"
	"wtg/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

var conf config.Configuration

func SetConfigurations(configuration config.Configuration) {
	conf = configuration
}

// Connect abre conexão com DB (sqlite3 por padrão) e faz automigrate básico.
// Para habilitar automigrate em ambientes de dev, exporte AUTOMIGRATE=1.
// O seed do catálogo de planos roda sempre: sem plano "free" no banco o engine
// de ativação não funciona, então isso é tratado como invariante de deploy.
func Connect() (*gorm.DB, error) {
	database := conf.Database
	if database == "" {
		database = "sqlite3"
	}

	var (
		db  *gorm.DB
		err error
	)

	if database == "postgres" || database == "postgresql" {
		log.Println("Utilizando conexão com o postgresql...")
		path := "host=" + conf.DbHost + " port=" + conf.DbPort
		path += " user=" + conf.DbUser + " dbname=" + conf.DbName
		path += " password=" + conf.DbPass
		db, err = gorm.Open("postgres", path)
	} else {
		log.Println("Utilizando conexão com o sqlite3...")
		dir := filepath.Dir("db/database.db")
		db, err = gorm.Open("sqlite3", dir+"/database.db")
	}

	if err != nil {
		log.Println("Got error when connect database, the error is: " + err.Error())
		return nil, err
	}

	// Log em dev
	db.LogMode(true)

	if getenv("AUTOMIGRATE", "0") == "1" {
		db.AutoMigrate(
			&models.User{},
			&models.ActivationCode{},
			&models.Plan{},
			&models.UserPlan{},
			&models.Promotion{},
			&models.Comment{},
		)
	}

	if err := SeedPlans(db); err != nil {
		return nil, err
	}

	return db, nil
}

// SeedPlans garante o catálogo mínimo de planos (free, monthly, partner).
// Preço aqui é placeholder: cobrança é responsabilidade de outro sistema.
func SeedPlans(db *gorm.DB) error {
	defaults := []models.Plan{
		{Name: "Gratuito", Type: models.PLAN_TYPE_FREE, PriceCents: 0},
		{Name: "Mensal", Type: models.PLAN_TYPE_MONTHLY, PriceCents: 2990},
		{Name: "Parceiro", Type: models.PLAN_TYPE_PARTNER, PriceCents: 0},
	}

	for _, plan := range defaults {
		var existing models.Plan
		err := db.Where("type = ?", plan.Type).First(&existing).Error
		if err == nil {
			continue
		}
		if !gorm.IsRecordNotFoundError(err) {
			return err
		}
		if err := db.Create(&plan).Error; err != nil {
			return fmt.Errorf("seed do plano %q falhou: %v", plan.Type, err)
		}
		log.Printf("Plano %q criado no catálogo", plan.Type)
	}

	var free models.Plan
	if err := db.Where("type = ?", models.PLAN_TYPE_FREE).First(&free).Error; err != nil {
		return fmt.Errorf("plano 'free' não encontrado no banco de dados: %v", err)
	}

	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
