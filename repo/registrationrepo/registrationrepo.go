//go:generate mockgen -destination mock_registrationrepo/mock_registrationrepo.go github.com/shopbeat/shopbeat-push-server/repo/registrationrepo RegistrationRepo

package registrationrepo

import (
	"context"
	"errors"
	"time"

	"github.com/anyproto/any-sync/app"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopbeat/shopbeat-push-server/db"
	"github.com/shopbeat/shopbeat-push-server/domain"
)

const CName = "push.registrationrepo"

const collName = "registration"

var (
	ErrNotFound = errors.New("registration not found")
)

func New() RegistrationRepo {
	return new(registrationRepo)
}

// RegistrationRepo is the durable source of truth for registrations,
// keyed by userId. The registry cache sits on top of it.
type RegistrationRepo interface {
	Get(ctx context.Context, userId string) (reg domain.Registration, err error)
	Set(ctx context.Context, reg domain.Registration, merge bool) (err error)
	Delete(ctx context.Context, userId string) (removed bool, err error)
	ListAll(ctx context.Context) (regs []domain.Registration, err error)
	Count(ctx context.Context) (count int, err error)
	app.ComponentRunnable
}

type registrationRepo struct {
	coll *mongo.Collection
}

func (r *registrationRepo) Init(a *app.App) (err error) {
	r.coll = a.MustComponent(db.CName).(db.Database).Db().Collection(collName)
	return
}

func (r *registrationRepo) Name() (name string) {
	return CName
}

func (r *registrationRepo) Run(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "valid", Value: 1}},
	})
	return err
}

func (r *registrationRepo) Get(ctx context.Context, userId string) (reg domain.Registration, err error) {
	err = r.coll.FindOne(ctx, bson.M{"_id": userId}).Decode(&reg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Registration{}, ErrNotFound
	}
	return
}

func (r *registrationRepo) Set(ctx context.Context, reg domain.Registration, merge bool) (err error) {
	now := time.Now().Unix()
	if !merge {
		reg.Created = now
		reg.Updated = now
		opts := options.Replace().SetUpsert(true)
		_, err = r.coll.ReplaceOne(ctx, bson.M{"_id": reg.UserId}, reg, opts)
		return
	}
	opts := options.Update().SetUpsert(true)
	_, err = r.coll.UpdateByID(
		ctx,
		reg.UserId,
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "token", Value: reg.Token},
				{Key: "role", Value: reg.Role},
				{Key: "device", Value: reg.Device},
				{Key: "valid", Value: reg.Valid},
				{Key: "updated", Value: now},
			}},
			{Key: "$setOnInsert", Value: bson.D{{Key: "created", Value: now}}},
		},
		opts,
	)
	return
}

func (r *registrationRepo) Delete(ctx context.Context, userId string) (removed bool, err error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": userId})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *registrationRepo) ListAll(ctx context.Context) (regs []domain.Registration, err error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return
	}
	defer func() {
		_ = cur.Close(ctx)
	}()
	err = cur.All(ctx, &regs)
	return
}

func (r *registrationRepo) Count(ctx context.Context) (count int, err error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	return int(n), err
}

func (r *registrationRepo) Close(ctx context.Context) (err error) {
	return nil
}
