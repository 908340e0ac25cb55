package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ianfajar-codes/sensorgas/internal/config"
	"github.com/ianfajar-codes/sensorgas/internal/errors"
	"github.com/ianfajar-codes/sensorgas/internal/logger"
	"github.com/ianfajar-codes/sensorgas/internal/telemetry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore is a Store backed by a MongoDB collection.
type MongoStore struct {
	client       *mongo.Client
	coll         *mongo.Collection
	fetchTimeout time.Duration
	log          logger.Logger
	now          func() time.Time
}

// Connect opens a client, pings the primary, and binds the configured
// collection. Any failure here is a CONNECTION error.
func Connect(ctx context.Context, cfg config.StoreConfig, log logger.Logger) (*MongoStore, error) {
	if log == nil {
		log = logger.Noop()
	}
	if strings.TrimSpace(cfg.URI) == "" {
		return nil, errors.New(errors.ErrConnection,
			"No MongoDB connection string configured",
			"Set MONGODB_URI in your environment or a .env file, or store.uri in .sensorgas.yaml")
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout).
		SetAppName("sensorgas")

	log.Debug("connecting to %s", config.RedactURI(cfg.URI))
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConnection,
			"Couldn't set up the MongoDB client",
			"Check the connection string format: mongodb://host:port or mongodb+srv://cluster")
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.WrapWithCode(err, errors.ErrConnection,
			fmt.Sprintf("Can't reach MongoDB at %s", config.RedactURI(cfg.URI)),
			"Check the server is running and reachable, and that the credentials are right")
	}

	log.Info("connected to %s.%s", cfg.Database, cfg.Collection)

	return &MongoStore{
		client:       client,
		coll:         client.Database(cfg.Database).Collection(cfg.Collection),
		fetchTimeout: cfg.FetchTimeout,
		log:          log,
		now:          time.Now,
	}, nil
}

// FetchAll reads the whole collection in natural (insertion) order. The
// first malformed document fails the entire fetch; nothing is returned
// partially.
func (s *MongoStore) FetchAll(ctx context.Context) ([]telemetry.Reading, error) {
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "Couldn't query sensor readings")
	}
	defer cur.Close(ctx)

	var readings []telemetry.Reading
	for i := 0; cur.Next(ctx); i++ {
		r, err := decodeReading(cur.Current)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrFetch,
				fmt.Sprintf("Malformed reading at position %d", i),
				"Each document needs a Date 'timestamp' and a numeric 'value'")
		}
		readings = append(readings, r)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(err, "Reading cursor failed")
	}

	return readings, nil
}

// InsertReading stores ppm stamped with the current time.
func (s *MongoStore) InsertReading(ctx context.Context, ppm float64) error {
	doc := encodeReading(telemetry.NewReading(s.now(), ppm))
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return errors.WrapWithCode(err, errors.ErrInsert,
			"Couldn't insert the reading",
			"Check the user has write access to the collection")
	}
	s.log.Debug("inserted %.2f ppm", ppm)
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func encodeReading(r telemetry.Reading) bson.D {
	return bson.D{
		{Key: FieldTimestamp, Value: primitive.NewDateTimeFromTime(r.Timestamp())},
		{Key: FieldValue, Value: r.Value()},
	}
}

// decodeReading extracts a reading from one raw document. The timestamp must
// be a BSON Date; the value may be any BSON number.
func decodeReading(doc bson.Raw) (telemetry.Reading, error) {
	tsVal, err := doc.LookupErr(FieldTimestamp)
	if err != nil {
		return telemetry.Reading{}, fmt.Errorf("missing %q field", FieldTimestamp)
	}
	ms, ok := tsVal.DateTimeOK()
	if !ok {
		return telemetry.Reading{}, fmt.Errorf("%q is %s, want datetime", FieldTimestamp, tsVal.Type)
	}

	valVal, err := doc.LookupErr(FieldValue)
	if err != nil {
		return telemetry.Reading{}, fmt.Errorf("missing %q field", FieldValue)
	}

	var ppm float64
	switch valVal.Type {
	case bson.TypeDouble:
		ppm = valVal.Double()
	case bson.TypeInt32:
		ppm = float64(valVal.Int32())
	case bson.TypeInt64:
		ppm = float64(valVal.Int64())
	default:
		return telemetry.Reading{}, fmt.Errorf("%q is %s, want a number", FieldValue, valVal.Type)
	}

	return telemetry.NewReading(time.UnixMilli(ms), ppm), nil
}
