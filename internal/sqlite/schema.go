package sqlite

// Schema DDL for the rule-set store. Criteria are stored as a JSON
// column: they are read and written as a unit with their rule set, never
// queried individually.
const schemaSQL = `CREATE TABLE IF NOT EXISTS rule_sets (
    rule_set_id TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    name        TEXT NOT NULL,
    operator    TEXT NOT NULL,
    enabled     INTEGER NOT NULL,
    active      INTEGER NOT NULL DEFAULT 0,
    criteria    TEXT NOT NULL,
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_rule_sets_user_name
    ON rule_sets(user_id, name);

CREATE INDEX IF NOT EXISTS idx_rule_sets_user_active
    ON rule_sets(user_id, active);`
