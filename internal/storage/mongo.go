package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"sketchnotes/internal/domain"
)

const mongoTimeout = 10 * time.Second

// MongoStore implements domain.NoteStore with a notes and a pages collection.
type MongoStore struct {
	client *mongo.Client
	notes  *mongo.Collection
	pages  *mongo.Collection
}

type mongoNote struct {
	ID   string  `bson:"_id"`
	Name *string `bson:"name,omitempty"`
}

type mongoPage struct {
	NoteID    string    `bson:"note_id"`
	PageIndex int       `bson:"page_index"`
	Drawing   []byte    `bson:"drawing"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// buildMongoURI returns cfg.Host when it is already a connection string,
// otherwise builds one from host and port.
func buildMongoURI(cfg Config, password string) string {
	if strings.HasPrefix(cfg.Host, "mongodb+srv://") || strings.HasPrefix(cfg.Host, "mongodb://") {
		uri := cfg.Host
		if password != "" {
			uri = strings.ReplaceAll(uri, "<password>", password)
			uri = strings.ReplaceAll(uri, "<db_password>", password)
		}
		return uri
	}
	port := cfg.Port
	if port == 0 {
		port = 27017
	}
	if cfg.Username != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.Username, password, cfg.Host, port)
	}
	return fmt.Sprintf("mongodb://%s:%d", cfg.Host, port)
}

// OpenMongo connects to MongoDB and ensures the page index exists.
func OpenMongo(cfg Config, password string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(buildMongoURI(cfg, password)))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	dbName := cfg.Database
	if dbName == "" {
		dbName = "sketchnotes"
	}
	db := client.Database(dbName)
	s := &MongoStore{
		client: client,
		notes:  db.Collection("notes"),
		pages:  db.Collection("pages"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	_, err = s.pages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "note_id", Value: 1}, {Key: "page_index", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("create page index: %w", err)
	}
	return s, nil
}

func (s *MongoStore) ListNoteIDs() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	cursor, err := s.notes.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var n mongoNote
		if err := cursor.Decode(&n); err != nil {
			return nil, err
		}
		ids = append(ids, n.ID)
	}
	return ids, cursor.Err()
}

func (s *MongoStore) ReadName(noteID string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	var n mongoNote
	err := s.notes.FindOne(ctx, bson.M{"_id": noteID}).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) || (err == nil && n.Name == nil) {
		return "", fmt.Errorf("name of %s: %w", noteID, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read name: %w", err)
	}
	return *n.Name, nil
}

func (s *MongoStore) WriteName(noteID, name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	res, err := s.notes.UpdateOne(ctx, bson.M{"_id": noteID}, bson.M{"$set": bson.M{"name": name}})
	if err != nil {
		return fmt.Errorf("write name: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) CreateNamespace(noteID string) error {
	if !domain.ValidNoteID(noteID) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidID, noteID)
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	_, err := s.notes.UpdateOne(ctx,
		bson.M{"_id": noteID},
		bson.M{"$setOnInsert": bson.M{"created_at": time.Now()}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (s *MongoStore) DeleteNamespace(noteID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	return deletePagesThenNote(ctx,
		func(ctx context.Context) error {
			_, err := s.pages.DeleteMany(ctx, bson.M{"note_id": noteID})
			return err
		},
		func(ctx context.Context) error {
			_, err := s.notes.DeleteOne(ctx, bson.M{"_id": noteID})
			return err
		},
	)
}

// deletePagesThenNote removes pages before the note document. The two
// collections are not updated atomically: if the page delete fails the note
// stays listed and a later delete retries, so pages are never orphaned
// under an id that no longer shows up.
func deletePagesThenNote(ctx context.Context, deletePages, deleteNote func(context.Context) error) error {
	if err := deletePages(ctx); err != nil {
		return fmt.Errorf("delete pages: %w", err)
	}
	if err := deleteNote(ctx); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func (s *MongoStore) ReadPage(noteID string, pageIndex int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	var p mongoPage
	err := s.pages.FindOne(ctx, bson.M{"note_id": noteID, "page_index": pageIndex}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("page %d of %s: %w", pageIndex, noteID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	return p.Drawing, nil
}

func (s *MongoStore) WritePage(noteID string, pageIndex int, drawing []byte) error {
	if pageIndex < 0 {
		return fmt.Errorf("write page: negative index %d", pageIndex)
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	n, err := s.notes.CountDocuments(ctx, bson.M{"_id": noteID})
	if err != nil {
		return fmt.Errorf("check note: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
	}
	if drawing == nil {
		drawing = []byte{}
	}
	_, err = s.pages.UpdateOne(ctx,
		bson.M{"note_id": noteID, "page_index": pageIndex},
		bson.M{"$set": bson.M{"drawing": drawing, "updated_at": time.Now()}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

func (s *MongoStore) CountPages(noteID string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	n, err := s.pages.CountDocuments(ctx, bson.M{"note_id": noteID})
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return int(n), nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}
