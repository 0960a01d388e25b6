//go:generate mockgen -destination mock_auditrepo/mock_auditrepo.go github.com/shopbeat/shopbeat-push-server/repo/auditrepo AuditRepo

package auditrepo

import (
	"context"
	"errors"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopbeat/shopbeat-push-server/db"
	"github.com/shopbeat/shopbeat-push-server/domain"
)

const CName = "push.auditrepo"

const (
	statusCollName = "status"
	logCollName    = "auditLog"

	statusDocId = "shop"
)

func New() AuditRepo {
	return new(auditRepo)
}

// AuditRepo persists the externally-observed shop status and an
// append-only audit trail of status flips and scheduled broadcasts.
type AuditRepo interface {
	GetShopStatus(ctx context.Context) (st domain.ShopStatus, err error)
	SetShopStatus(ctx context.Context, st domain.ShopStatus) (err error)
	AddLog(ctx context.Context, rec domain.AuditRecord) (err error)
	ListLogs(ctx context.Context, limit int) (recs []domain.AuditRecord, err error)
	app.ComponentRunnable
}

type auditRepo struct {
	statusColl *mongo.Collection
	logColl    *mongo.Collection
}

func (r *auditRepo) Init(a *app.App) (err error) {
	database := a.MustComponent(db.CName).(db.Database).Db()
	r.statusColl = database.Collection(statusCollName)
	r.logColl = database.Collection(logCollName)
	return
}

func (r *auditRepo) Name() (name string) {
	return CName
}

func (r *auditRepo) Run(ctx context.Context) error {
	_, err := r.logColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created", Value: -1}},
	})
	return err
}

// GetShopStatus returns an open status when the document has never been
// written, so a fresh deployment behaves as an open shop.
func (r *auditRepo) GetShopStatus(ctx context.Context) (st domain.ShopStatus, err error) {
	err = r.statusColl.FindOne(ctx, bson.M{"_id": statusDocId}).Decode(&st)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ShopStatus{IsOpen: true}, nil
	}
	return
}

func (r *auditRepo) SetShopStatus(ctx context.Context, st domain.ShopStatus) (err error) {
	opts := options.Update().SetUpsert(true)
	_, err = r.statusColl.UpdateByID(
		ctx,
		statusDocId,
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "isOpen", Value: st.IsOpen},
			{Key: "updatedBy", Value: st.UpdatedBy},
			{Key: "autoClosed", Value: st.AutoClosed},
			{Key: "updated", Value: time.Now().Unix()},
		}}},
		opts,
	)
	return
}

func (r *auditRepo) AddLog(ctx context.Context, rec domain.AuditRecord) (err error) {
	if rec.Id == "" {
		rec.Id = uuid.NewString()
	}
	if rec.Created == 0 {
		rec.Created = time.Now().Unix()
	}
	_, err = r.logColl.InsertOne(ctx, rec)
	return
}

func (r *auditRepo) ListLogs(ctx context.Context, limit int) (recs []domain.AuditRecord, err error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}}).SetLimit(int64(limit))
	cur, err := r.logColl.Find(ctx, bson.D{}, opts)
	if err != nil {
		return
	}
	defer func() {
		_ = cur.Close(ctx)
	}()
	err = cur.All(ctx, &recs)
	return
}

func (r *auditRepo) Close(ctx context.Context) (err error) {
	return nil
}
