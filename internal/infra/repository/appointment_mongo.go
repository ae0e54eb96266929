package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

const AppointmentsCollection = "appointments"

type AppointmentMongoRepository struct {
	coll *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Database) *AppointmentMongoRepository {
	return &AppointmentMongoRepository{coll: db.Collection(AppointmentsCollection)}
}

func appointmentFilter(f domain.Filter) bson.M {
	m := bson.M{}
	if f.ID != "" {
		m["_id"] = f.ID
	}
	if f.CreatedBy != "" {
		m["createdBy"] = f.CreatedBy
	}
	return m
}

func (r *AppointmentMongoRepository) Insert(
	ctx context.Context,
	ap *models.Appointment,
) error {

	now := time.Now().UTC()
	ap.ID = uuid.NewString()
	ap.CreatedAt = now
	ap.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, ap); err != nil {
		return httperr.ErrStore("insert appointment", err)
	}
	return nil
}

func (r *AppointmentMongoRepository) FindMany(
	ctx context.Context,
	filter domain.Filter,
) ([]models.Appointment, error) {

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cur, err := r.coll.Find(ctx, appointmentFilter(filter), opts)
	if err != nil {
		return nil, httperr.ErrStore("list appointments", err)
	}

	apps := make([]models.Appointment, 0)
	if err := cur.All(ctx, &apps); err != nil {
		return nil, httperr.ErrStore("decode appointments", err)
	}

	return apps, nil
}

func (r *AppointmentMongoRepository) FindOne(
	ctx context.Context,
	filter domain.Filter,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.coll.FindOne(ctx, appointmentFilter(filter)).Decode(&ap)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, httperr.ErrStore("find appointment", err)
	}

	return &ap, nil
}

func (r *AppointmentMongoRepository) Update(
	ctx context.Context,
	filter domain.Filter,
	patch domain.Patch,
) (*models.Appointment, error) {

	set := patch.Values()
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ap models.Appointment
	err := r.coll.FindOneAndUpdate(
		ctx,
		appointmentFilter(filter),
		bson.M{"$set": set},
		opts,
	).Decode(&ap)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, httperr.ErrStore("update appointment", err)
	}

	return &ap, nil
}

func (r *AppointmentMongoRepository) Delete(
	ctx context.Context,
	filter domain.Filter,
) (bool, error) {

	res, err := r.coll.DeleteOne(ctx, appointmentFilter(filter))
	if err != nil {
		return false, httperr.ErrStore("delete appointment", err)
	}

	return res.DeletedCount > 0, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentMongoRepository)(nil)
