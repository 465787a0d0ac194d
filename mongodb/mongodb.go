// Package mongodb provides MongoDB-backed implementations of the repository
// interfaces. One collection per aggregate: cargos, locations, voyages, and
// handling_events as an append-only log keyed by tracking id.
package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cargotracker/shipping/cargo"
	"github.com/cargotracker/shipping/location"
	"github.com/cargotracker/shipping/voyage"
)

const queryTimeout = 5 * time.Second

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), queryTimeout)
}

type cargoRepository struct {
	db *mongo.Database
}

// NewCargoRepository returns a MongoDB-backed cargo repository.
func NewCargoRepository(db *mongo.Database) cargo.Repository {
	return &cargoRepository{db: db}
}

type cargoDocument struct {
	TrackingID cargo.TrackingID `bson:"tracking_id"`
	Cargo      *cargo.Cargo     `bson:"cargo"`
}

func (r *cargoRepository) Store(c *cargo.Cargo) error {
	ctx, cancel := opContext()
	defer cancel()

	filter := bson.M{"tracking_id": c.TrackingID}
	doc := cargoDocument{TrackingID: c.TrackingID, Cargo: c}

	_, err := r.db.Collection("cargos").ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *cargoRepository) Find(id cargo.TrackingID) (*cargo.Cargo, error) {
	ctx, cancel := opContext()
	defer cancel()

	var doc cargoDocument
	err := r.db.Collection("cargos").FindOne(ctx, bson.M{"tracking_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, cargo.ErrUnknown
	}
	if err != nil {
		return nil, err
	}
	return doc.Cargo, nil
}

func (r *cargoRepository) FindAll() []*cargo.Cargo {
	ctx, cancel := opContext()
	defer cancel()

	cur, err := r.db.Collection("cargos").Find(ctx, bson.M{})
	if err != nil {
		return nil
	}
	defer cur.Close(ctx)

	var result []*cargo.Cargo
	for cur.Next(ctx) {
		var doc cargoDocument
		if err := cur.Decode(&doc); err != nil {
			continue
		}
		result = append(result, doc.Cargo)
	}
	return result
}

type locationRepository struct {
	db *mongo.Database
}

// NewLocationRepository returns a MongoDB-backed location repository.
func NewLocationRepository(db *mongo.Database) location.Repository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Find(c location.UNLcode) (*location.Location, error) {
	ctx, cancel := opContext()
	defer cancel()

	var l location.Location
	err := r.db.Collection("locations").FindOne(ctx, bson.M{"unlcode": c}).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return nil, location.ErrUnknown
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *locationRepository) FindAll() []*location.Location {
	ctx, cancel := opContext()
	defer cancel()

	cur, err := r.db.Collection("locations").Find(ctx, bson.M{})
	if err != nil {
		return nil
	}
	defer cur.Close(ctx)

	var result []*location.Location
	for cur.Next(ctx) {
		var l location.Location
		if err := cur.Decode(&l); err != nil {
			continue
		}
		result = append(result, &l)
	}
	return result
}

// Seed upserts the sample locations and voyages, so a fresh database can
// serve bookings right away.
func Seed(db *mongo.Database) error {
	ctx, cancel := opContext()
	defer cancel()

	for _, l := range []*location.Location{
		location.Stockholm, location.Melbourne, location.Hongkong,
		location.NewYork, location.Chicago, location.Tokyo,
		location.Hamburg, location.Rotterdam, location.Helsinki,
	} {
		_, err := db.Collection("locations").ReplaceOne(ctx,
			bson.M{"unlcode": l.UNLcode}, l, options.Replace().SetUpsert(true))
		if err != nil {
			return err
		}
	}

	for _, v := range []*voyage.Voyage{voyage.SampleV100, voyage.SampleV300, voyage.SampleV400} {
		_, err := db.Collection("voyages").ReplaceOne(ctx,
			bson.M{"number": v.Number}, v, options.Replace().SetUpsert(true))
		if err != nil {
			return err
		}
	}
	return nil
}

type voyageRepository struct {
	db *mongo.Database
}

// NewVoyageRepository returns a MongoDB-backed voyage repository.
func NewVoyageRepository(db *mongo.Database) voyage.Repository {
	return &voyageRepository{db: db}
}

func (r *voyageRepository) Find(n voyage.Number) (*voyage.Voyage, error) {
	ctx, cancel := opContext()
	defer cancel()

	var v voyage.Voyage
	err := r.db.Collection("voyages").FindOne(ctx, bson.M{"number": n}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, voyage.ErrUnknown
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *voyageRepository) FindAll() []*voyage.Voyage {
	ctx, cancel := opContext()
	defer cancel()

	cur, err := r.db.Collection("voyages").Find(ctx, bson.M{})
	if err != nil {
		return nil
	}
	defer cur.Close(ctx)

	var result []*voyage.Voyage
	for cur.Next(ctx) {
		var v voyage.Voyage
		if err := cur.Decode(&v); err != nil {
			continue
		}
		result = append(result, &v)
	}
	return result
}

type handlingEventRepository struct {
	db *mongo.Database
}

// NewHandlingEventRepository returns a MongoDB-backed handling event
// repository.
func NewHandlingEventRepository(db *mongo.Database) cargo.HandlingEventRepository {
	return &handlingEventRepository{db: db}
}

func (r *handlingEventRepository) Store(e cargo.HandlingEvent) {
	ctx, cancel := opContext()
	defer cancel()

	r.db.Collection("handling_events").InsertOne(ctx, bson.M{
		"tracking_id":   e.TrackingID,
		"type":          e.Activity.Type,
		"location":      e.Activity.Location,
		"voyage_number": e.Activity.VoyageNumber,
		"completed":     e.Completed.UTC(),
		"registered":    e.Registered.UTC(),
	})
}

func (r *handlingEventRepository) QueryHandlingHistory(id cargo.TrackingID) cargo.HandlingHistory {
	ctx, cancel := opContext()
	defer cancel()

	cur, err := r.db.Collection("handling_events").Find(ctx, bson.M{"tracking_id": id})
	if err != nil {
		return cargo.HandlingHistory{}
	}
	defer cur.Close(ctx)

	var events []cargo.HandlingEvent
	for cur.Next(ctx) {
		var doc struct {
			TrackingID   cargo.TrackingID        `bson:"tracking_id"`
			Type         cargo.HandlingEventType `bson:"type"`
			Location     location.UNLcode        `bson:"location"`
			VoyageNumber voyage.Number           `bson:"voyage_number"`
			Completed    time.Time               `bson:"completed"`
			Registered   time.Time               `bson:"registered"`
		}
		if err := cur.Decode(&doc); err != nil {
			continue
		}
		events = append(events, cargo.HandlingEvent{
			TrackingID: doc.TrackingID,
			Activity: cargo.HandlingActivity{
				Type:         doc.Type,
				Location:     doc.Location,
				VoyageNumber: doc.VoyageNumber,
			},
			Completed:  doc.Completed,
			Registered: doc.Registered,
		})
	}
	return cargo.HandlingHistory{HandlingEvents: events}
}
