// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the narrative-engine pipeline.
package types

import "time"

// SignalItem is one captured social post. Items are immutable once captured;
// the engagement score is derived at capture time and never recomputed.
type SignalItem struct {
	// ID is the post identifier assigned by the social API.
	ID string `json:"id" yaml:"id"`

	// Text is the post body.
	Text string `json:"text" yaml:"text"`

	// Author is the posting account's handle.
	Author string `json:"author" yaml:"author"`

	// Likes, Reposts, and Replies are the public engagement counters at capture time.
	Likes   int `json:"likes" yaml:"likes"`
	Reposts int `json:"reposts" yaml:"reposts"`
	Replies int `json:"replies" yaml:"replies"`

	// CreatedAt is the post's creation timestamp.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Query is the search query that surfaced this post.
	Query string `json:"query" yaml:"query"`

	// URL links to the post.
	URL string `json:"url" yaml:"url"`

	// Engagement is the derived score: likes + 2*reposts + replies.
	Engagement int `json:"engagement" yaml:"engagement"`
}

// SocialCluster groups the social posts matched to one topic label.
type SocialCluster struct {
	// Topic is the cluster's topic label from the pattern table.
	Topic string `json:"topic" yaml:"topic"`

	// PostCount is the number of posts in the cluster.
	PostCount int `json:"post_count" yaml:"post_count"`

	// TotalEngagement sums the engagement scores of all member posts.
	TotalEngagement int `json:"total_engagement" yaml:"total_engagement"`

	// AvgEngagement is TotalEngagement / PostCount, rounded to an integer.
	AvgEngagement int `json:"avg_engagement" yaml:"avg_engagement"`

	// UniqueAuthors counts distinct posting accounts in the cluster.
	UniqueAuthors int `json:"unique_authors" yaml:"unique_authors"`

	// TopPosts holds up to 5 posts in the stream's global engagement order.
	TopPosts []SignalItem `json:"top_posts" yaml:"top_posts"`

	// KeyTerms holds up to 10 frequency-ranked tokens summarizing the cluster.
	KeyTerms []string `json:"key_terms" yaml:"key_terms"`
}
