package mongodb

import (
	"context"
	"errors"
	"time"

	"healthcare-portal/internal/domain/entity"
	domainRepo "healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type appointmentRepository struct {
	coll  *mongo.Collection
	users *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) domainRepo.AppointmentRepository {
	return &appointmentRepository{
		coll:  db.Collection(AppointmentsCollection),
		users: db.Collection(UsersCollection),
	}
}

type populate struct {
	patient bool
	doctor  bool
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	stamp(&appointment.CreatedAt, &appointment.UpdatedAt)
	_, err := r.coll.InsertOne(ctx, toAppointmentDocument(appointment))
	return err
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var doc appointmentDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	appointment, err := doc.toEntity()
	if err != nil {
		return nil, err
	}

	appointments := []entity.Appointment{*appointment}
	if err := r.populate(ctx, appointments, populate{patient: true, doctor: true}); err != nil {
		return nil, err
	}
	return &appointments[0], nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	return r.find(ctx, bson.M{"patientId": patientID.String()}, populate{doctor: true})
}

func (r *appointmentRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID.String()}, populate{patient: true})
}

func (r *appointmentRepository) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	return r.find(ctx, bson.M{}, populate{patient: true, doctor: true})
}

func (r *appointmentRepository) Decide(ctx context.Context, id, doctorID uuid.UUID, status entity.AppointmentStatus, notes string) (bool, error) {
	filter := bson.M{
		"_id":      id.String(),
		"doctorId": doctorID.String(),
		"status":   string(entity.AppointmentStatusPending),
	}
	update := bson.M{"$set": bson.M{
		"status":      string(status),
		"doctorNotes": notes,
		"updatedAt":   time.Now().UTC(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}

func (r *appointmentRepository) find(ctx context.Context, filter bson.M, p populate) ([]entity.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "appointmentDate", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []appointmentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	appointments := make([]entity.Appointment, 0, len(docs))
	for _, doc := range docs {
		appointment, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, *appointment)
	}

	if err := r.populate(ctx, appointments, p); err != nil {
		return nil, err
	}
	return appointments, nil
}

// populate loads the referenced parties in one query, without password hashes.
func (r *appointmentRepository) populate(ctx context.Context, appointments []entity.Appointment, p populate) error {
	if len(appointments) == 0 || (!p.patient && !p.doctor) {
		return nil
	}

	seen := make(map[string]struct{})
	ids := make([]string, 0)
	add := func(id uuid.UUID) {
		key := id.String()
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			ids = append(ids, key)
		}
	}
	for _, a := range appointments {
		if p.patient {
			add(a.PatientID)
		}
		if p.doctor {
			add(a.DoctorID)
		}
	}

	opts := options.Find().SetProjection(bson.M{"password": 0})
	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return err
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return err
	}

	parties := make(map[uuid.UUID]*entity.User, len(docs))
	for _, doc := range docs {
		user, err := doc.toEntity()
		if err != nil {
			return err
		}
		user.Password = ""
		parties[user.ID] = user
	}

	for i := range appointments {
		if p.patient {
			appointments[i].Patient = parties[appointments[i].PatientID]
		}
		if p.doctor {
			appointments[i].Doctor = parties[appointments[i].DoctorID]
		}
	}
	return nil
}
