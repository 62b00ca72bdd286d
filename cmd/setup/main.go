package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/trovehq/trove/internal/database/schema"
)

type seedItem struct {
	internalName string
	displayName  string
	rarity       string
	description  string
}

// Starter catalog. Setup is idempotent so redeploys keep existing rows.
var seedItems = []seedItem{
	{"pebble", "Pebble", "common", "A smooth little stone. Everyone has one."},
	{"twig", "Twig", "common", "Snapped off something, probably a tree."},
	{"bottle_cap", "Bottle Cap", "common", "Slightly bent. Still shiny."},
	{"rusty_nail", "Rusty Nail", "common", "Mind your fingers."},
	{"acorn", "Acorn", "common", "A forest in waiting."},
	{"clay_shard", "Clay Shard", "common", "A fragment of somebody's old pot."},
	{"seashell", "Seashell", "common", "It still smells faintly of the sea."},
	{"feather", "Feather", "common", "Lost by a passing bird."},
	{"glass_bead", "Glass Bead", "uncommon", "Catches the light rather nicely."},
	{"brass_button", "Brass Button", "uncommon", "From a very fancy coat."},
	{"old_coin", "Old Coin", "uncommon", "The face on it is long forgotten."},
	{"polished_agate", "Polished Agate", "uncommon", "Banded in warm browns and reds."},
	{"tin_whistle", "Tin Whistle", "uncommon", "Plays exactly one good note."},
	{"wax_seal", "Wax Seal", "uncommon", "Pressed with an unfamiliar crest."},
	{"silver_locket", "Silver Locket", "rare", "It refuses to open."},
	{"amber_chunk", "Amber Chunk", "rare", "Something tiny is trapped inside."},
	{"compass_rose", "Compass Rose", "rare", "It points somewhere better."},
	{"inkwell", "Crystal Inkwell", "rare", "The ink inside never dries out."},
	{"moonstone", "Moonstone", "epic", "Glows softly when nobody is looking."},
	{"music_box", "Music Box", "epic", "Plays a tune you almost remember."},
	{"star_chart", "Star Chart", "epic", "Maps a sky no one has seen."},
	{"dragon_scale", "Dragon Scale", "legendary", "Warm to the touch, always."},
	{"phoenix_feather", "Phoenix Feather", "legendary", "It smolders but never burns."},
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	// 1. Connect to default 'postgres' database to create the new database
	defaultConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", user, password, host, port)
	conn, err := pgx.Connect(context.Background(), defaultConnString)
	if err != nil {
		log.Fatalf("Unable to connect to postgres database: %v", err)
	}
	defer conn.Close(context.Background())

	// 2. Check if database exists
	var exists bool
	err = conn.QueryRow(context.Background(), "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbname).Scan(&exists)
	if err != nil {
		log.Fatalf("Failed to check if database exists: %v", err)
	}

	if !exists {
		fmt.Printf("Creating database %s...\n", dbname)
		_, err = conn.Exec(context.Background(), fmt.Sprintf("CREATE DATABASE %s", dbname))
		if err != nil {
			log.Fatalf("Failed to create database: %v", err)
		}
		fmt.Println("Database created successfully.")
	} else {
		fmt.Printf("Database %s already exists.\n", dbname)
	}

	// Close connection to postgres db
	conn.Close(context.Background())

	// 3. Connect to the new database to apply the schema
	targetConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)
	targetConn, err := pgx.Connect(context.Background(), targetConnString)
	if err != nil {
		log.Fatalf("Unable to connect to %s database: %v", dbname, err)
	}
	defer targetConn.Close(context.Background())

	// 4. Apply schema
	fmt.Println("Applying schema...")
	_, err = targetConn.Exec(context.Background(), schema.SchemaSQL)
	if err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	// 5. Seed the item catalog
	fmt.Println("Seeding item catalog...")
	seeded := 0
	for _, item := range seedItems {
		tag, err := targetConn.Exec(context.Background(),
			`INSERT INTO items (internal_name, display_name, rarity, item_description)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (internal_name) DO NOTHING`,
			item.internalName, item.displayName, item.rarity, item.description)
		if err != nil {
			log.Fatalf("Failed to seed item %s: %v", item.internalName, err)
		}
		seeded += int(tag.RowsAffected())
	}
	fmt.Printf("Seeded %d new items (%d total in catalog).\n", seeded, len(seedItems))

	fmt.Println("Setup completed successfully.")
}
