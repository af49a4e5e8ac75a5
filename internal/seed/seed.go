// Package seed inserts demo catalog entries and the courier directory for
// local development. Safe to run repeatedly.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name        string
	Description string
	Price       float64
	Images      []string
	Category    string
	Stock       int
	Sizes       []string
	Colors      []string
	Tags        []string
}

type driverSeed struct {
	Name          string
	Phone         string
	Email         string
	VehicleNumber string
}

// Apply inserts the demo data. Products are keyed by name, drivers by email.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Name:        "Classic Cotton Tee",
			Description: "Soft everyday t-shirt in heavyweight cotton",
			Price:       19.99,
			Images:      []string{"https://cdn.tapto.example/products/classic-tee.jpg"},
			Category:    "clothing",
			Stock:       120,
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"black", "white", "navy"},
			Tags:        []string{"basics", "cotton"},
		},
		{
			Name:        "Trail Runner Sneakers",
			Description: "Lightweight trail shoes with grippy outsole",
			Price:       64.50,
			Images:      []string{"https://cdn.tapto.example/products/trail-runner.jpg"},
			Category:    "shoes",
			Stock:       45,
			Sizes:       []string{"40", "41", "42", "43", "44"},
			Colors:      []string{"grey", "orange"},
			Tags:        []string{"running", "outdoor"},
		},
		{
			Name:        "Himalayan Wool Scarf",
			Description: "Hand-woven wool scarf from Kathmandu valley",
			Price:       28.00,
			Images:      []string{"https://cdn.tapto.example/products/wool-scarf.jpg"},
			Category:    "accessories",
			Stock:       60,
			Colors:      []string{"red", "indigo"},
			Tags:        []string{"handmade", "wool"},
		},
		{
			Name:        "Steel Water Bottle 1L",
			Description: "Double-walled insulated bottle, keeps drinks cold 24h",
			Price:       12.90,
			Images:      []string{"https://cdn.tapto.example/products/steel-bottle.jpg"},
			Category:    "accessories",
			Stock:       200,
			Tags:        []string{"insulated"},
		},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	drivers := []driverSeed{
		{Name: "Amit Sharma", Phone: "+91 9876543210", Email: "amit.sharma@example.com", VehicleNumber: "DL 5S 1234"},
		{Name: "Sita Gurung", Phone: "+977 9812345678", Email: "sita.gurung@example.com", VehicleNumber: "BA 2 PA 4321"},
		{Name: "Ramesh Thapa", Phone: "+977 9801122334", Email: "ramesh.thapa@example.com", VehicleNumber: "GA 1 KHA 5678"},
		{Name: "Priya Singh", Phone: "+91 9123456789", Email: "priya.singh@example.com", VehicleNumber: "MH 12 AB 9876"},
		{Name: "Manoj Yadav", Phone: "+91 9988776655", Email: "manoj.yadav@example.com", VehicleNumber: "UP 32 CD 2468"},
		{Name: "Bikash Shrestha", Phone: "+977 9841234567", Email: "bikash.shrestha@example.com", VehicleNumber: "LU 3 PA 1357"},
	}
	for _, d := range drivers {
		if err := upsertDriver(ctx, pool, d); err != nil {
			return fmt.Errorf("upsert driver %s: %w", d.Email, err)
		}
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	// Products carry no natural unique key, so the name stands in for one
	// here. Existing rows are left alone to avoid clobbering admin edits.
	const q = `
INSERT INTO products (name, description, price, images, category, stock, sizes, colors, tags)
SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
`
	_, err := pool.Exec(ctx, q,
		p.Name, p.Description, p.Price, emptySlice(p.Images), p.Category, p.Stock,
		emptySlice(p.Sizes), emptySlice(p.Colors), emptySlice(p.Tags))
	return err
}

func upsertDriver(ctx context.Context, pool *pgxpool.Pool, d driverSeed) error {
	const q = `
INSERT INTO delivery_drivers (name, phone, email, vehicle_number, is_active)
VALUES ($1, $2, $3, $4, TRUE)
ON CONFLICT (email) DO UPDATE
SET name = EXCLUDED.name,
    phone = EXCLUDED.phone,
    vehicle_number = EXCLUDED.vehicle_number
`
	_, err := pool.Exec(ctx, q, d.Name, d.Phone, d.Email, d.VehicleNumber)
	return err
}

func emptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
