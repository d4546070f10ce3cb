package migrations

import (
	"context"
	"salonbase-backend/utils"

	"github.com/google/uuid"
)

// All is the full revision chain, in no particular order; the runner sorts
// it by the declared predecessors.
var All = []Revision{
	initialSchema,
	salonSlug,
	packTables,
	salonCustomers,
	customerUUID,
}

// createTable creates the table (and its companion statements) only when it
// does not already exist.
func createTable(ctx context.Context, c Conn, name string, ddl string, companions ...string) error {
	exists, err := hasTable(ctx, c, name)
	if err != nil || exists {
		return err
	}
	return exec(ctx, c, append([]string{ddl}, companions...)...)
}

var initialSchema = Revision{
	ID: "001_initial",
	Up: func(ctx context.Context, c Conn) error {
		if err := createTable(ctx, c, "salons", `
			CREATE TABLE salons (
				id UUID PRIMARY KEY,
				name TEXT NOT NULL,
				address TEXT,
				about TEXT,
				logo_url TEXT,
				working_hours JSONB NOT NULL DEFAULT '{}',
				layout_pattern TEXT NOT NULL DEFAULT 'classic',
				theme_palette TEXT NOT NULL DEFAULT 'rose',
				appointment_reminders BOOLEAN NOT NULL DEFAULT TRUE,
				sms_notifications BOOLEAN NOT NULL DEFAULT FALSE,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				deleted_at TIMESTAMPTZ,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`); err != nil {
			return err
		}

		if err := createTable(ctx, c, "users", `
			CREATE TABLE users (
				id UUID PRIMARY KEY,
				email TEXT NOT NULL UNIQUE,
				password TEXT NOT NULL,
				name TEXT NOT NULL,
				phone TEXT,
				role VARCHAR(20) NOT NULL,
				salon_id UUID NOT NULL REFERENCES salons(id),
				last_login TIMESTAMPTZ,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX ix_users_salon_id ON users (salon_id)`); err != nil {
			return err
		}

		// salon_id is the legacy direct reference; revision 004 migrates it
		// into the salon_customers junction.
		if err := createTable(ctx, c, "customers", `
			CREATE TABLE customers (
				id BIGSERIAL PRIMARY KEY,
				salon_id UUID REFERENCES salons(id),
				name TEXT NOT NULL,
				phone TEXT NOT NULL UNIQUE,
				email TEXT,
				is_verified BOOLEAN NOT NULL DEFAULT FALSE,
				platform_joined_at TIMESTAMPTZ,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				deleted_at TIMESTAMPTZ,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX ix_customers_salon_id ON customers (salon_id)`); err != nil {
			return err
		}

		if err := createTable(ctx, c, "products", `
			CREATE TABLE products (
				id BIGSERIAL PRIMARY KEY,
				salon_id UUID NOT NULL REFERENCES salons(id),
				name TEXT NOT NULL,
				description TEXT,
				category TEXT NOT NULL DEFAULT 'General',
				price INTEGER NOT NULL,
				quantity INTEGER NOT NULL DEFAULT 0,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				deleted_at TIMESTAMPTZ,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX ix_products_salon_id ON products (salon_id)`); err != nil {
			return err
		}

		if err := createTable(ctx, c, "appointments", `
			CREATE TABLE appointments (
				id BIGSERIAL PRIMARY KEY,
				salon_id UUID NOT NULL REFERENCES salons(id),
				customer_id BIGINT NOT NULL REFERENCES customers(id),
				service_name TEXT NOT NULL,
				scheduled_at TIMESTAMPTZ NOT NULL,
				status VARCHAR(20) NOT NULL DEFAULT 'booked',
				notes TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX ix_appointments_salon_id ON appointments (salon_id)`,
			`CREATE INDEX ix_appointments_scheduled_at ON appointments (scheduled_at)`); err != nil {
			return err
		}

		if err := createTable(ctx, c, "orders", `
			CREATE TABLE orders (
				id BIGSERIAL PRIMARY KEY,
				salon_id UUID NOT NULL REFERENCES salons(id),
				customer_id BIGINT NOT NULL REFERENCES customers(id),
				status VARCHAR(20) NOT NULL DEFAULT 'pending',
				total_amount INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX ix_orders_salon_id ON orders (salon_id)`); err != nil {
			return err
		}

		return createTable(ctx, c, "order_items", `
			CREATE TABLE order_items (
				id BIGSERIAL PRIMARY KEY,
				order_id BIGINT NOT NULL REFERENCES orders(id),
				product_id BIGINT REFERENCES products(id),
				item_name TEXT NOT NULL,
				quantity INTEGER NOT NULL DEFAULT 1,
				unit_price INTEGER NOT NULL,
				total_price INTEGER NOT NULL
			)`,
			`CREATE INDEX ix_order_items_order_id ON order_items (order_id)`)
	},
	Down: func(ctx context.Context, c Conn) error {
		return exec(ctx, c,
			`DROP TABLE IF EXISTS order_items`,
			`DROP TABLE IF EXISTS orders`,
			`DROP TABLE IF EXISTS appointments`,
			`DROP TABLE IF EXISTS products`,
			`DROP TABLE IF EXISTS customers`,
			`DROP TABLE IF EXISTS users`,
			`DROP TABLE IF EXISTS salons`)
	},
}

// salonSlug introduces the unique, human-readable salon identifier in three
// phases: nullable column, backfill, then NOT NULL plus the unique index.
// The backfill is one linear scan with a batch-local uniqueness set, seeded
// with any slugs a previous partial run already assigned.
var salonSlug = Revision{
	ID:      "002_salon_slug",
	Revises: "001_initial",
	Up: func(ctx context.Context, c Conn) error {
		present, err := hasColumn(ctx, c, "salons", "slug")
		if err != nil {
			return err
		}
		if !present {
			if err := exec(ctx, c, `ALTER TABLE salons ADD COLUMN slug TEXT`); err != nil {
				return err
			}
		}

		slugs := utils.NewSlugSet()
		if present {
			assigned, err := c.QueryContext(ctx, `SELECT slug FROM salons WHERE slug IS NOT NULL`)
			if err != nil {
				return err
			}
			for assigned.Next() {
				var slug string
				if err := assigned.Scan(&slug); err != nil {
					assigned.Close()
					return err
				}
				slugs.Reserve(slug)
			}
			if err := assigned.Err(); err != nil {
				assigned.Close()
				return err
			}
			assigned.Close()
		}

		rows, err := c.QueryContext(ctx, `SELECT id, name FROM salons WHERE slug IS NULL ORDER BY created_at, id`)
		if err != nil {
			return err
		}
		type salonRow struct {
			id   string
			name string
		}
		var pending []salonRow
		for rows.Next() {
			var r salonRow
			if err := rows.Scan(&r.id, &r.name); err != nil {
				rows.Close()
				return err
			}
			pending = append(pending, r)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()

		for _, r := range pending {
			if _, err := c.ExecContext(ctx, `UPDATE salons SET slug = $1 WHERE id = $2`, slugs.Claim(r.name), r.id); err != nil {
				return err
			}
		}

		// Every row has a value now; only now is the column tightened.
		if err := exec(ctx, c, `ALTER TABLE salons ALTER COLUMN slug SET NOT NULL`); err != nil {
			return err
		}

		indexed, err := hasIndex(ctx, c, "salons", "idx_salons_slug")
		if err != nil || indexed {
			return err
		}
		return exec(ctx, c, `CREATE UNIQUE INDEX idx_salons_slug ON salons (slug)`)
	},
	Down: func(ctx context.Context, c Conn) error {
		return exec(ctx, c,
			`DROP INDEX IF EXISTS idx_salons_slug`,
			`ALTER TABLE salons DROP COLUMN IF EXISTS slug`)
	},
}

var packTables = Revision{
	ID:      "003_packs",
	Revises: "002_salon_slug",
	Up: func(ctx context.Context, c Conn) error {
		if err := createTable(ctx, c, "packs", `
			CREATE TABLE packs (
				id BIGSERIAL PRIMARY KEY,
				salon_id UUID NOT NULL REFERENCES salons(id),
				name TEXT NOT NULL,
				description TEXT,
				custom_price INTEGER,
				discount_percentage DOUBLE PRECISION NOT NULL DEFAULT 0,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				deleted_at TIMESTAMPTZ,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX ix_packs_salon_id ON packs (salon_id)`); err != nil {
			return err
		}

		if err := createTable(ctx, c, "pack_products", `
			CREATE TABLE pack_products (
				id BIGSERIAL PRIMARY KEY,
				pack_id BIGINT NOT NULL REFERENCES packs(id),
				product_id BIGINT NOT NULL REFERENCES products(id),
				quantity INTEGER NOT NULL DEFAULT 1,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT uq_pack_product UNIQUE (pack_id, product_id)
			)`,
			`CREATE INDEX ix_pack_products_pack_id ON pack_products (pack_id)`); err != nil {
			return err
		}

		present, err := hasColumn(ctx, c, "order_items", "pack_id")
		if err != nil || present {
			return err
		}
		return exec(ctx, c, `ALTER TABLE order_items ADD COLUMN pack_id BIGINT REFERENCES packs(id)`)
	},
	Down: func(ctx context.Context, c Conn) error {
		return exec(ctx, c,
			`ALTER TABLE order_items DROP COLUMN IF EXISTS pack_id`,
			`DROP TABLE IF EXISTS pack_products`,
			`DROP TABLE IF EXISTS packs`)
	},
}

// salonCustomers synthesizes the salon↔customer junction from the legacy
// direct reference: skeleton rows first, then the derived counters by
// correlated aggregation per (salon, customer) pair.
var salonCustomers = Revision{
	ID:      "004_salon_customers",
	Revises: "003_packs",
	Up: func(ctx context.Context, c Conn) error {
		if err := createTable(ctx, c, "salon_customers", `
			CREATE TABLE salon_customers (
				id BIGSERIAL PRIMARY KEY,
				salon_id UUID NOT NULL REFERENCES salons(id),
				customer_id BIGINT NOT NULL REFERENCES customers(id),
				source TEXT NOT NULL DEFAULT 'appointment',
				notes TEXT,
				loyalty_points INTEGER NOT NULL DEFAULT 0,
				total_spent INTEGER NOT NULL DEFAULT 0,
				total_appointments INTEGER NOT NULL DEFAULT 0,
				is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
				first_interaction_at TIMESTAMPTZ,
				last_interaction_at TIMESTAMPTZ,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT uq_salon_customer UNIQUE (salon_id, customer_id)
			)`,
			`CREATE INDEX ix_salon_customers_salon_id ON salon_customers (salon_id)`,
			`CREATE INDEX ix_salon_customers_customer_id ON salon_customers (customer_id)`); err != nil {
			return err
		}

		return exec(ctx, c,
			`INSERT INTO salon_customers (salon_id, customer_id, source, first_interaction_at, last_interaction_at, created_at)
			 SELECT salon_id, id, 'manual', created_at, created_at, created_at
			 FROM customers
			 WHERE salon_id IS NOT NULL
			 ON CONFLICT (salon_id, customer_id) DO NOTHING`,
			`UPDATE salon_customers
			 SET total_appointments = (
			     SELECT COUNT(*) FROM appointments
			     WHERE appointments.customer_id = salon_customers.customer_id
			     AND appointments.salon_id = salon_customers.salon_id
			 )`,
			`UPDATE salon_customers
			 SET total_spent = COALESCE((
			     SELECT SUM(total_amount) FROM orders
			     WHERE orders.customer_id = salon_customers.customer_id
			     AND orders.salon_id = salon_customers.salon_id
			     AND orders.status = 'paid'
			 ), 0)`,
			`UPDATE salon_customers
			 SET last_interaction_at = COALESCE(
			     (SELECT MAX(created_at) FROM appointments
			      WHERE appointments.customer_id = salon_customers.customer_id
			      AND appointments.salon_id = salon_customers.salon_id),
			     salon_customers.first_interaction_at
			 )`)
	},
	Down: func(ctx context.Context, c Conn) error {
		return exec(ctx, c, `DROP TABLE IF EXISTS salon_customers`)
	},
}

// customerUUID gives every customer a stable public identifier, generated
// here rather than in the database so the backfill works on any Postgres.
var customerUUID = Revision{
	ID:      "005_customer_uuid",
	Revises: "004_salon_customers",
	Up: func(ctx context.Context, c Conn) error {
		present, err := hasColumn(ctx, c, "customers", "uuid")
		if err != nil {
			return err
		}
		if !present {
			if err := exec(ctx, c, `ALTER TABLE customers ADD COLUMN uuid VARCHAR(36)`); err != nil {
				return err
			}
		}

		rows, err := c.QueryContext(ctx, `SELECT id FROM customers WHERE uuid IS NULL`)
		if err != nil {
			return err
		}
		var pending []int64
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			pending = append(pending, id)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()

		for _, id := range pending {
			if _, err := c.ExecContext(ctx, `UPDATE customers SET uuid = $1 WHERE id = $2`, uuid.New().String(), id); err != nil {
				return err
			}
		}

		if err := exec(ctx, c, `ALTER TABLE customers ALTER COLUMN uuid SET NOT NULL`); err != nil {
			return err
		}

		indexed, err := hasIndex(ctx, c, "customers", "uq_customers_uuid")
		if err != nil || indexed {
			return err
		}
		return exec(ctx, c, `CREATE UNIQUE INDEX uq_customers_uuid ON customers (uuid)`)
	},
	Down: func(ctx context.Context, c Conn) error {
		return exec(ctx, c,
			`DROP INDEX IF EXISTS uq_customers_uuid`,
			`ALTER TABLE customers DROP COLUMN IF EXISTS uuid`)
	},
}
