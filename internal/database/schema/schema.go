package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Users
-- user_id is owned by the external identity provider, hence TEXT.
CREATE TABLE IF NOT EXISTS users (
    user_id TEXT PRIMARY KEY,
    username VARCHAR(50) UNIQUE NOT NULL,
    balance INTEGER NOT NULL DEFAULT 1000 CHECK (balance >= 0),
    streak_count INTEGER NOT NULL DEFAULT 0,
    last_daily_claim TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Markets
-- status only ever moves forward: OPEN -> CLOSED -> RESOLVED.
CREATE TABLE IF NOT EXISTS markets (
    market_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status VARCHAR(10) NOT NULL DEFAULT 'OPEN' CHECK (status IN ('OPEN', 'CLOSED', 'RESOLVED')),
    closes_at TIMESTAMPTZ NOT NULL,
    news_summary TEXT,
    resolved_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_markets_status_closes_at ON markets (status, closes_at);

-- Outcomes
-- total_points is the cumulative stake pool, monotonically non-decreasing
-- while the market is open.
CREATE TABLE IF NOT EXISTS outcomes (
    outcome_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    market_id UUID NOT NULL REFERENCES markets(market_id) ON DELETE CASCADE,
    label VARCHAR(100) NOT NULL,
    total_points INTEGER NOT NULL DEFAULT 0 CHECK (total_points >= 0),
    sort_order INTEGER NOT NULL DEFAULT 0,
    UNIQUE (market_id, label)
);

CREATE INDEX IF NOT EXISTS idx_outcomes_market_id ON outcomes (market_id);

-- Bets (append-only ledger; rows are never updated or deleted)
CREATE TABLE IF NOT EXISTS bets (
    bet_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id TEXT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    outcome_id UUID NOT NULL REFERENCES outcomes(outcome_id) ON DELETE CASCADE,
    points INTEGER NOT NULL CHECK (points > 0),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_bets_user_id_created_at ON bets (user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_bets_outcome_id ON bets (outcome_id);

-- Resolutions (exactly one per resolved market)
CREATE TABLE IF NOT EXISTS resolutions (
    resolution_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    market_id UUID UNIQUE NOT NULL REFERENCES markets(market_id) ON DELETE CASCADE,
    winner_outcome_id UUID NOT NULL REFERENCES outcomes(outcome_id),
    confidence DOUBLE PRECISION NOT NULL CHECK (confidence >= 0 AND confidence <= 1),
    reasoning TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// SeedSQL loads demo users and two demo markets. Applied only when
// SEED_DEMO_DATA is set; every statement is idempotent.
const SeedSQL = `
INSERT INTO users (user_id, username, balance) VALUES
    ('demo-alice', 'alice', 1000),
    ('demo-bob', 'bob', 1000),
    ('demo-carol', 'carol', 1000)
ON CONFLICT (user_id) DO NOTHING;

WITH m AS (
    INSERT INTO markets (title, description, closes_at)
    SELECT 'Will it rain in Berlin tomorrow?', 'Resolved from the evening weather report.', NOW() + INTERVAL '1 day'
    WHERE NOT EXISTS (SELECT 1 FROM markets WHERE title = 'Will it rain in Berlin tomorrow?')
    RETURNING market_id
)
INSERT INTO outcomes (market_id, label, sort_order)
SELECT market_id, v.label, v.sort_order
FROM m, (VALUES ('Yes', 0), ('No', 1)) AS v(label, sort_order);

WITH m AS (
    INSERT INTO markets (title, description, closes_at)
    SELECT 'Will the home team win the derby on Saturday?', 'Resolved from the final score.', NOW() + INTERVAL '5 days'
    WHERE NOT EXISTS (SELECT 1 FROM markets WHERE title = 'Will the home team win the derby on Saturday?')
    RETURNING market_id
)
INSERT INTO outcomes (market_id, label, sort_order)
SELECT market_id, v.label, v.sort_order
FROM m, (VALUES ('Yes', 0), ('No', 1)) AS v(label, sort_order);
`
