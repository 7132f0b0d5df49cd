package sqlite

// Schema DDL. seq keeps insertion order; body holds the product as JSON
// and quantity is the authoritative quantity column.
const (
	createProducts = `CREATE TABLE products (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    unique_id INTEGER NOT NULL UNIQUE,
    category TEXT NOT NULL,
    name TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    body TEXT NOT NULL
);`

	idxProductsName = `CREATE INDEX idx_products_name ON products(name);`
)

// schemaDDL lists the statements run when a store is opened.
var schemaDDL = []string{
	createProducts,
	idxProductsName,
}
