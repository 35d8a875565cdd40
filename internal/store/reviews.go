package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"easypack/internal/kv"
)

// snapshotKey is the storage slot holding the whole review collection,
// matching the key the mobile client used in its local storage.
const snapshotKey = "reviews"

// popularMinLikes and popularMinComments gate a post into the popular
// ranking; defaultPopularLimit caps the ranking when no limit is given.
const (
	popularMinLikes     = 5
	popularMinComments  = 5
	defaultPopularLimit = 5
)

type Review struct {
	ID       string    `json:"id"`
	Country  Country   `json:"country"`
	Rating   int       `json:"rating"`
	Review   string    `json:"review"`
	Title    string    `json:"title,omitempty"`
	Date     time.Time `json:"date"`
	Likes    int       `json:"likes"`
	Liked    bool      `json:"liked"`
	Comments []Comment `json:"comments"`
}

type Comment struct {
	ID      string  `json:"id"`
	Author  string  `json:"author"`
	Text    string  `json:"text"`
	Likes   int     `json:"likes"`
	Replies []Reply `json:"replies"`
}

type Reply struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Text   string `json:"text"`
	Likes  int    `json:"likes"`
}

// ReviewStore keeps the community posts in a single serialized snapshot.
// Every mutation is a full read-modify-write cycle, so mu serializes all
// writers on this instance. Comment/reply like tracking is per process
// session and deliberately not persisted, which preserves the behavior of
// the original client.
type ReviewStore struct {
	snapshots kv.Store

	mu     sync.Mutex
	lastID int64

	likedMu sync.Mutex
	liked   map[string]struct{}

	now func() time.Time
}

func NewReviewStore(snapshots kv.Store) *ReviewStore {
	return &ReviewStore{
		snapshots: snapshots,
		liked:     make(map[string]struct{}),
		now:       time.Now,
	}
}

// load reads and decodes the whole collection. A missing key is an empty
// collection; an undecodable payload is ErrCorruptSnapshot so callers can
// offer Reset as the recovery action.
func (s *ReviewStore) load(ctx context.Context) ([]Review, error) {
	raw, err := s.snapshots.Get(ctx, snapshotKey)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return []Review{}, nil
		}
		return nil, err
	}
	var reviews []Review
	if err := json.Unmarshal([]byte(raw), &reviews); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return reviews, nil
}

func (s *ReviewStore) save(ctx context.Context, reviews []Review) error {
	raw, err := json.Marshal(reviews)
	if err != nil {
		return err
	}
	return s.snapshots.Set(ctx, snapshotKey, string(raw))
}

// nextID mirrors the client's Date.now().toString() ids while staying
// strictly increasing when two posts land in the same millisecond.
// Callers must hold mu.
func (s *ReviewStore) nextID() string {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

func (s *ReviewStore) List(ctx context.Context) ([]Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *ReviewStore) Create(ctx context.Context, country Country, rating int, text, title string) (*Review, error) {
	if !country.Valid() {
		return nil, &ValidationError{Field: "country", Message: "destination must be selected"}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "review", Message: "review text must not be empty"}
	}
	if rating < 0 || rating > 5 {
		return nil, &ValidationError{Field: "rating", Message: "rating must be between 0 and 5"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	review := Review{
		ID:       s.nextID(),
		Country:  country,
		Rating:   rating,
		Review:   text,
		Title:    strings.TrimSpace(title),
		Date:     s.now().UTC(),
		Comments: []Comment{},
	}
	reviews = append(reviews, review)

	if err := s.save(ctx, reviews); err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes the post and, because comments and replies are embedded,
// everything under it. A missing id is a no-op.
func (s *ReviewStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := reviews[:0]
	for _, r := range reviews {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(reviews) {
		return nil
	}
	return s.save(ctx, kept)
}

// ToggleLike flips the device-local liked flag and keeps the count in step
// with it, so a post never carries more than one like from this device.
func (s *ReviewStore) ToggleLike(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i := range reviews {
		if reviews[i].ID != id {
			continue
		}
		if reviews[i].Liked {
			reviews[i].Liked = false
			if reviews[i].Likes > 0 {
				reviews[i].Likes--
			}
		} else {
			reviews[i].Liked = true
			reviews[i].Likes++
		}
		return s.save(ctx, reviews)
	}
	return nil
}

func (s *ReviewStore) AddComment(ctx context.Context, reviewID, author, text string) (*Comment, error) {
	if strings.TrimSpace(author) == "" {
		return nil, &ValidationError{Field: "author", Message: "author must not be empty"}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Message: "comment text must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range reviews {
		if reviews[i].ID != reviewID {
			continue
		}
		comment := Comment{
			ID:      s.nextID(),
			Author:  strings.TrimSpace(author),
			Text:    strings.TrimSpace(text),
			Replies: []Reply{},
		}
		reviews[i].Comments = append(reviews[i].Comments, comment)
		if err := s.save(ctx, reviews); err != nil {
			return nil, err
		}
		return &comment, nil
	}
	return nil, ErrNotFound
}

func (s *ReviewStore) DeleteComment(ctx context.Context, reviewID, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i := range reviews {
		if reviews[i].ID != reviewID {
			continue
		}
		kept := reviews[i].Comments[:0]
		for _, c := range reviews[i].Comments {
			if c.ID != commentID {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(reviews[i].Comments) {
			return nil
		}
		reviews[i].Comments = kept
		return s.save(ctx, reviews)
	}
	return nil
}

// LikeComment adds one like, at most once per process session. The second
// attempt reports ErrAlreadyLiked and leaves the count untouched.
func (s *ReviewStore) LikeComment(ctx context.Context, commentID string) error {
	if !s.markLiked("comment:" + commentID) {
		return ErrAlreadyLiked
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i := range reviews {
		for j := range reviews[i].Comments {
			if reviews[i].Comments[j].ID == commentID {
				reviews[i].Comments[j].Likes++
				return s.save(ctx, reviews)
			}
		}
	}
	s.unmarkLiked("comment:" + commentID)
	return nil
}

func (s *ReviewStore) AddReply(ctx context.Context, reviewID, commentID, author, text string) (*Reply, error) {
	if strings.TrimSpace(author) == "" {
		return nil, &ValidationError{Field: "author", Message: "author must not be empty"}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Message: "reply text must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range reviews {
		if reviews[i].ID != reviewID {
			continue
		}
		for j := range reviews[i].Comments {
			if reviews[i].Comments[j].ID != commentID {
				continue
			}
			reply := Reply{
				ID:     s.nextID(),
				Author: strings.TrimSpace(author),
				Text:   strings.TrimSpace(text),
			}
			reviews[i].Comments[j].Replies = append(reviews[i].Comments[j].Replies, reply)
			if err := s.save(ctx, reviews); err != nil {
				return nil, err
			}
			return &reply, nil
		}
	}
	return nil, ErrNotFound
}

func (s *ReviewStore) DeleteReply(ctx context.Context, reviewID, commentID, replyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i := range reviews {
		if reviews[i].ID != reviewID {
			continue
		}
		for j := range reviews[i].Comments {
			if reviews[i].Comments[j].ID != commentID {
				continue
			}
			kept := reviews[i].Comments[j].Replies[:0]
			for _, rp := range reviews[i].Comments[j].Replies {
				if rp.ID != replyID {
					kept = append(kept, rp)
				}
			}
			if len(kept) == len(reviews[i].Comments[j].Replies) {
				return nil
			}
			reviews[i].Comments[j].Replies = kept
			return s.save(ctx, reviews)
		}
	}
	return nil
}

func (s *ReviewStore) LikeReply(ctx context.Context, replyID string) error {
	if !s.markLiked("reply:" + replyID) {
		return ErrAlreadyLiked
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i := range reviews {
		for j := range reviews[i].Comments {
			for k := range reviews[i].Comments[j].Replies {
				if reviews[i].Comments[j].Replies[k].ID == replyID {
					reviews[i].Comments[j].Replies[k].Likes++
					return s.save(ctx, reviews)
				}
			}
		}
	}
	s.unmarkLiked("reply:" + replyID)
	return nil
}

// Board lists a country's posts newest first, id descending on equal
// timestamps so the order is stable.
func (s *ReviewStore) Board(ctx context.Context, country Country) ([]Review, error) {
	reviews, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	posts := make([]Review, 0)
	for _, r := range reviews {
		if r.Country == country {
			posts = append(posts, r)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return newerThan(posts[i], posts[j])
	})
	return posts, nil
}

// LatestPerCountry picks the most recent post for each destination.
// Countries without posts are absent from the map.
func (s *ReviewStore) LatestPerCountry(ctx context.Context) (map[Country]Review, error) {
	reviews, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	latest := make(map[Country]Review)
	for _, r := range reviews {
		current, ok := latest[r.Country]
		if !ok || newerThan(r, current) {
			latest[r.Country] = r
		}
	}
	return latest, nil
}

// Popular ranks posts that cleared the engagement threshold (5 likes or 5
// comments) by likes+comments descending, newest first on ties.
func (s *ReviewStore) Popular(ctx context.Context, limit int) ([]Review, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}

	reviews, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]Review, 0)
	for _, r := range reviews {
		if r.Likes >= popularMinLikes || len(r.Comments) >= popularMinComments {
			ranked = append(ranked, r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := score(ranked[i]), score(ranked[j])
		if si != sj {
			return si > sj
		}
		return newerThan(ranked[i], ranked[j])
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Reset drops the snapshot. This is the recovery action offered when the
// stored collection turns out to be corrupt.
func (s *ReviewStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots.Delete(ctx, snapshotKey)
}

func (s *ReviewStore) markLiked(key string) bool {
	s.likedMu.Lock()
	defer s.likedMu.Unlock()
	if _, ok := s.liked[key]; ok {
		return false
	}
	s.liked[key] = struct{}{}
	return true
}

func (s *ReviewStore) unmarkLiked(key string) {
	s.likedMu.Lock()
	defer s.likedMu.Unlock()
	delete(s.liked, key)
}

func score(r Review) int {
	return r.Likes + len(r.Comments)
}

// newerThan orders a before b when a was posted later; equal timestamps
// fall back to the numerically larger id.
func newerThan(a, b Review) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return idAfter(a.ID, b.ID)
}

func idAfter(a, b string) bool {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return ai > bi
	}
	return a > b
}
