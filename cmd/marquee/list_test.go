package main

import (
	"testing"

	"github.com/mmcdole/marquee/internal/card"
	"github.com/mmcdole/marquee/internal/listing"
)

func TestFormatHeading(t *testing.T) {
	tests := []struct {
		mode  listing.SortMode
		count int
		want  string
	}{
		{listing.SortOriginal, 20, "현재 상영작 / Now Playing (20)"},
		{listing.SortPopularity, 3, "인기순 / Popular (3)"},
		{listing.SortBooking, 1, "예매율순 / Booking rate (approx.) (1)"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := formatHeading(tt.mode, tt.count); got != tt.want {
				t.Errorf("formatHeading() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatCardLine(t *testing.T) {
	tests := []struct {
		name string
		rank int
		card card.Card
		want string
	}{
		{
			name: "all fields",
			rank: 1,
			card: card.Card{Title: "듄: 파트 2", Rating: "8.2", Date: "2024.02.28", Genres: "SF, 모험"},
			want: "  1. 듄: 파트 2  ·  ★ 8.2  ·  2024.02.28  ·  SF, 모험",
		},
		{
			name: "no date or genres",
			rank: 12,
			card: card.Card{Title: "제목 없음", Rating: "0.0"},
			want: " 12. 제목 없음  ·  ★ 0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatCardLine(tt.rank, tt.card); got != tt.want {
				t.Errorf("formatCardLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
