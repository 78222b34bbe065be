package store

// schemaDDL bootstraps the content repository when the target is an
// empty SQLite database. MySQL and PostgreSQL targets are expected to
// carry the equivalent schema already (managed by the serving
// application's own migrations).
const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL DEFAULT '',
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	display_name TEXT NOT NULL DEFAULT '',
	wp_user_id INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_users_wp ON users(wp_user_id);

CREATE TABLE IF NOT EXISTS categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	parent_id INTEGER REFERENCES categories(id),
	wp_term_id INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_categories_wp ON categories(wp_term_id);

CREATE TABLE IF NOT EXISTS tags (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	wp_term_id INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_tags_wp ON tags(wp_term_id);

CREATE TABLE IF NOT EXISTS media (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL DEFAULT '',
	file TEXT NOT NULL DEFAULT '',
	alt_text TEXT NOT NULL DEFAULT '',
	mime_type TEXT NOT NULL DEFAULT '',
	original_url TEXT NOT NULL DEFAULT '',
	wp_post_id INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_media_wp ON media(wp_post_id);

CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL DEFAULT '',
	slug TEXT NOT NULL UNIQUE,
	content TEXT NOT NULL DEFAULT '',
	excerpt TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'draft',
	author_id INTEGER REFERENCES users(id),
	featured_media_id INTEGER REFERENCES media(id),
	published_at TIMESTAMP,
	seo_title TEXT NOT NULL DEFAULT '',
	seo_description TEXT NOT NULL DEFAULT '',
	animal_name TEXT NOT NULL DEFAULT '',
	species TEXT NOT NULL DEFAULT '',
	breed TEXT NOT NULL DEFAULT '',
	sex TEXT NOT NULL DEFAULT '',
	birth_date TIMESTAMP,
	weight_kg REAL,
	identification TEXT NOT NULL DEFAULT '',
	is_vaccinated BOOLEAN,
	is_sterilized BOOLEAN,
	foster_family TEXT NOT NULL DEFAULT '',
	wp_post_id INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_posts_wp ON posts(wp_post_id);

CREATE TABLE IF NOT EXISTS pages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL DEFAULT '',
	slug TEXT NOT NULL UNIQUE,
	content TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'draft',
	author_id INTEGER REFERENCES users(id),
	parent_id INTEGER REFERENCES pages(id),
	menu_order INTEGER NOT NULL DEFAULT 0,
	template TEXT NOT NULL DEFAULT '',
	published_at TIMESTAMP,
	seo_title TEXT NOT NULL DEFAULT '',
	seo_description TEXT NOT NULL DEFAULT '',
	wp_post_id INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_pages_wp ON pages(wp_post_id);

CREATE TABLE IF NOT EXISTS post_categories (
	post_id INTEGER NOT NULL REFERENCES posts(id),
	category_id INTEGER NOT NULL REFERENCES categories(id),
	PRIMARY KEY (post_id, category_id)
);

CREATE TABLE IF NOT EXISTS post_tags (
	post_id INTEGER NOT NULL REFERENCES posts(id),
	tag_id INTEGER NOT NULL REFERENCES tags(id),
	PRIMARY KEY (post_id, tag_id)
);

CREATE TABLE IF NOT EXISTS gallery_images (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	post_id INTEGER NOT NULL REFERENCES posts(id),
	media_id INTEGER NOT NULL REFERENCES media(id),
	position INTEGER NOT NULL DEFAULT 0,
	UNIQUE (post_id, media_id)
);

CREATE TABLE IF NOT EXISTS comments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	post_id INTEGER NOT NULL REFERENCES posts(id),
	author_name TEXT NOT NULL DEFAULT '',
	author_email TEXT NOT NULL DEFAULT '',
	author_url TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	parent_id INTEGER REFERENCES comments(id),
	created_at TIMESTAMP,
	wp_comment_id INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_comments_wp ON comments(wp_comment_id);

CREATE TABLE IF NOT EXISTS menus (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	wp_term_id INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS menu_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	menu_id INTEGER NOT NULL REFERENCES menus(id),
	title TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL DEFAULT '',
	target TEXT NOT NULL DEFAULT '',
	css_classes TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL DEFAULT 0,
	parent_id INTEGER REFERENCES menu_items(id),
	content_type TEXT NOT NULL DEFAULT '',
	object_id INTEGER,
	linked_post_id INTEGER REFERENCES posts(id),
	linked_page_id INTEGER REFERENCES pages(id),
	linked_category_id INTEGER REFERENCES categories(id),
	wp_post_id INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_menu_items_wp ON menu_items(wp_post_id);

CREATE TABLE IF NOT EXISTS redirects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	old_path TEXT NOT NULL UNIQUE,
	new_path TEXT NOT NULL,
	is_permanent BOOLEAN NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS plugin_data (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	plugin_name TEXT NOT NULL DEFAULT '',
	source_table TEXT NOT NULL DEFAULT '',
	data TEXT NOT NULL DEFAULT '{}',
	post_id INTEGER REFERENCES posts(id),
	page_id INTEGER REFERENCES pages(id)
);
`
