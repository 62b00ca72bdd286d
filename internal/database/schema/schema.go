package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Accounts

-- Account IDs come from the external identity provider, so they are opaque
-- text rather than locally generated UUIDs.
CREATE TABLE IF NOT EXISTS accounts (
    account_id TEXT PRIMARY KEY,
    name VARCHAR(32) UNIQUE NOT NULL,
    money BIGINT NOT NULL DEFAULT 100 CHECK (money >= 0),
    xp BIGINT NOT NULL DEFAULT 0 CHECK (xp >= 0),
    last_collected_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Item Catalog (immutable reference data, seeded at setup time)
CREATE TABLE IF NOT EXISTS items (
    item_id SERIAL PRIMARY KEY,
    internal_name VARCHAR(100) UNIQUE NOT NULL,
    display_name VARCHAR(100) NOT NULL,
    rarity VARCHAR(20) NOT NULL CHECK (rarity IN ('common', 'uncommon', 'rare', 'epic', 'legendary')),
    item_description TEXT
);

CREATE INDEX IF NOT EXISTS idx_items_rarity ON items(rarity);

-- Account Inventory (JSONB slot list, one row per account)
CREATE TABLE IF NOT EXISTS inventories (
    account_id TEXT PRIMARY KEY REFERENCES accounts(account_id) ON DELETE CASCADE,
    inventory_data JSONB NOT NULL DEFAULT '{"slots": []}',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Marketplace Listings
-- Terminal rows (sold/cancelled/expired) are kept for history; only the
-- partial unique index below cares about active ones.
CREATE TABLE IF NOT EXISTS listings (
    listing_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    seller_id TEXT NOT NULL REFERENCES accounts(account_id) ON DELETE CASCADE,
    item_id INTEGER NOT NULL REFERENCES items(item_id) ON DELETE RESTRICT,
    quantity INTEGER NOT NULL CHECK (quantity >= 1),
    price_per_unit BIGINT NOT NULL CHECK (price_per_unit >= 1),
    status VARCHAR(20) NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'sold', 'cancelled', 'expired')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    expires_at TIMESTAMPTZ
);

-- One active listing per (seller, item); backs the duplicate-listing rule.
CREATE UNIQUE INDEX IF NOT EXISTS idx_listings_active_seller_item
    ON listings(seller_id, item_id) WHERE status = 'active';

CREATE INDEX IF NOT EXISTS idx_listings_status ON listings(status);
CREATE INDEX IF NOT EXISTS idx_listings_expiry
    ON listings(expires_at) WHERE status = 'active' AND expires_at IS NOT NULL;

-- Friendships
CREATE TABLE IF NOT EXISTS friendships (
    friendship_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    requester_id TEXT NOT NULL REFERENCES accounts(account_id) ON DELETE CASCADE,
    recipient_id TEXT NOT NULL REFERENCES accounts(account_id) ON DELETE CASCADE,
    status VARCHAR(20) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'accepted')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CHECK (requester_id <> recipient_id)
);

-- At most one friendship per unordered pair, regardless of direction.
CREATE UNIQUE INDEX IF NOT EXISTS idx_friendships_pair
    ON friendships(LEAST(requester_id, recipient_id), GREATEST(requester_id, recipient_id));

CREATE INDEX IF NOT EXISTS idx_friendships_requester ON friendships(requester_id);
CREATE INDEX IF NOT EXISTS idx_friendships_recipient ON friendships(recipient_id);

-- Sales Audit
-- No foreign keys: audit rows must outlive the accounts and listings they
-- reference.
CREATE TABLE IF NOT EXISTS sales (
    sale_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    listing_id UUID NOT NULL,
    buyer_id TEXT NOT NULL,
    seller_id TEXT NOT NULL,
    item_id INTEGER NOT NULL,
    quantity INTEGER NOT NULL,
    total_price BIGINT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_sales_buyer ON sales(buyer_id);
CREATE INDEX IF NOT EXISTS idx_sales_seller ON sales(seller_id);
`
