// Package posts serves the read-mostly API over the posts table: the closed set
// of routes, their request defaults and the store they read from.
package posts

import "time"

// Post is a row of the posts table. UpdatedAt is omitted by the routes that do
// not select it.
type Post struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   *string    `json:"content"`
	Category  *string    `json:"category"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// PostSummary is the reduced post returned by the recent route
type PostSummary struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Category  *string   `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryCount is the number of posts of a category, posts without category
// are grouped under a null category
type CategoryCount struct {
	Category  *string `json:"category"`
	PostCount int64   `json:"post_count"`
}

// Stats are the aggregates of the posts table
type Stats struct {
	TotalPosts      int64      `json:"total_posts"`
	TotalCategories int64      `json:"total_categories"`
	LatestPost      *time.Time `json:"latest_post"`
	FirstPost       *time.Time `json:"first_post"`
}

// StatsReport is the payload of the stats route
type StatsReport struct {
	Stats
	Database   string `json:"database"`
	Status     string `json:"status"`
	Latency    string `json:"latency"`
	Compliance string `json:"compliance"`
}

// Info is the payload returned for any path that is not a known route
type Info struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
	Database  string   `json:"database"`
	Status    string   `json:"status"`
}

// Message is a payload carrying only a human readable message
type Message struct {
	Message string `json:"message"`
}

// SeedPost is a sample post inserted by the init route
type SeedPost struct {
	Title    string
	Content  string
	Category string
}

// SeedPosts are the sample rows inserted when the database is initialized
var SeedPosts = []SeedPost{
	{"Real-Time AI Processing at Scale", "Advanced techniques for processing AI workloads in real-time...", "Technology"},
	{"Enterprise Security Implementation Guide", "Best practices for implementing enterprise-grade security...", "Security"},
	{"Global Deployment Strategies", "How to deploy applications globally with minimal latency...", "Infrastructure"},
	{"Machine Learning Pipeline Optimization", "Optimizing ML pipelines for production environments...", "AI/ML"},
	{"Database Performance Tuning", "Advanced techniques for PostgreSQL performance optimization...", "Database"},
	{"Multi-Language NLP Models", "Building and deploying multilingual NLP models...", "NLP"},
}
