package shardtail

import (
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"go.uber.org/zap"

	emptycheckpointer "github.com/Fewbytes/shardtail/checkpointers/empty"
	si "github.com/Fewbytes/shardtail/interface"
)

// Worker consumes a single shard until stopped, until the shard is closed,
// or until a fatal error. Workers share nothing; scaling out is one Worker
// per shard, each with its own iterator, checkpoint store, and backoff.
//
// Delivery is at-least-once: a crash between emitting a batch's events and
// saving its checkpoint replays part of that batch on restart.
type Worker struct {
	stream   si.Stream
	store    si.CheckpointStore
	decoder  si.Decoder
	iter     *IteratorManager
	backoff  *Backoff
	opt      *Options
	log      *zap.Logger
	metrics  *metrics
	stop     chan si.Unit
	stopOnce sync.Once

	// highest sequence number consumed since process start; renewals
	// resume AFTER it
	lastSequence string
}

// NewWorker wires a worker from its collaborators. A nil store disables
// checkpoint persistence; a nil decoder emits raw record payloads.
func NewWorker(stream si.Stream, store si.CheckpointStore, decoder si.Decoder, opt *Options) (*Worker, error) {
	if opt == nil {
		opt = &DefaultOptions
	}
	o, err := opt.withDefaults()
	if err != nil {
		return nil, err
	}
	if _, err := o.startPosition(); err != nil {
		return nil, err
	}
	if store == nil {
		store = emptycheckpointer.New()
	}
	if decoder == nil {
		decoder = RawDecoder{}
	}
	return &Worker{
		stream:  stream,
		store:   store,
		decoder: decoder,
		iter:    NewIteratorManager(stream, store, o.Stream, o.ShardID, o.Logger),
		backoff: NewBackoff(o.PollUnit),
		opt:     o,
		log:     o.Logger.With(zap.String("stream", o.Stream), zap.String("shard", o.ShardID)),
		metrics: newMetrics(o.Registerer, o.Stream, o.ShardID),
		stop:    make(chan si.Unit),
	}, nil
}

// Stop asks the worker to exit. It is observed at the top of the next
// cycle and inside backoff waits; a GetRecords call already in flight is
// not interrupted, the request is honored once it returns.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
}

// Run consumes the shard and blocks until done. The checkpoint store is
// released on every exit path, fatal ones included.
func (w *Worker) Run(sink si.EventSink) error {
	defer func() {
		if err := w.store.Close(); err != nil {
			w.log.Warn("closing checkpoint store", zap.Error(err))
		}
	}()

	if err := w.preflight(); err != nil {
		return err
	}

	pos, err := w.opt.startPosition()
	if err != nil {
		return err
	}
	it, err := w.iter.Acquire(pos)
	if err != nil {
		return err
	}
	w.log.Info("worker started", zap.String("start_from", w.opt.StartFrom))

	for {
		select {
		case <-w.stop:
			w.log.Info("worker stopped")
			return nil
		default:
		}

		out, err := w.stream.GetRecords(&kinesis.GetRecordsInput{
			ShardIterator: aws.String(it),
			Limit:         aws.Int64(w.opt.BatchSize),
		})
		if err != nil {
			if !isExpiredIterator(err) {
				return si.Fatal("get records failed", err)
			}
			w.metrics.renewals.Inc()
			it, err = w.iter.Renew(w.lastSequence)
			if err != nil {
				return err
			}
			// retry the cycle with the fresh handle, no backoff consumed
			continue
		}

		if len(out.Records) > 0 {
			if err := w.consume(out.Records, sink); err != nil {
				return err
			}
			w.backoff.Reset()
		} else {
			w.metrics.emptyPolls.Inc()
			w.backoff.Suspend(w.stop)
		}

		if out.NextShardIterator == nil {
			w.log.Info("shard is closed, no further records")
			return nil
		}
		it = aws.StringValue(out.NextShardIterator)
	}
}

// consume decodes a nonempty batch in arrival order, emits the tagged
// events, and persists the numeric maximum sequence number seen.
func (w *Worker) consume(records []*kinesis.Record, sink si.EventSink) error {
	maxSequence := w.lastSequence
	for _, rec := range records {
		sequence := aws.StringValue(rec.SequenceNumber)
		w.metrics.records.Inc()
		payloads, err := w.decoder.Decode(rec.Data)
		if err != nil {
			w.log.Warn("dropping undecodable record",
				zap.String("sequence_number", sequence), zap.Error(err))
		}
		for _, p := range payloads {
			ev := &si.Event{
				Data:           p,
				SequenceNumber: sequence,
				ShardID:        w.opt.ShardID,
				PartitionKey:   aws.StringValue(rec.PartitionKey),
			}
			if err := sink.Put(ev); err != nil {
				return si.Fatal("event sink rejected event", err)
			}
			w.metrics.events.Inc()
		}
		maxSequence = MaxSequence(maxSequence, sequence)
	}
	w.lastSequence = maxSequence

	if err := w.store.Save(&si.Checkpoint{
		ShardID:        w.opt.ShardID,
		Stream:         w.opt.Stream,
		SequenceNumber: maxSequence,
	}); err != nil {
		return si.Fatal("checkpoint save failed", err)
	}
	w.metrics.checkpoints.Inc()
	return nil
}

// preflight refuses to start against a stream that is missing or in a
// state where reads cannot be trusted.
func (w *Worker) preflight() error {
	out, err := w.stream.DescribeStream(&kinesis.DescribeStreamInput{
		StreamName: aws.String(w.opt.Stream),
	})
	if err != nil {
		return si.Fatal("describe stream "+w.opt.Stream+" failed", err)
	}
	status := aws.StringValue(out.StreamDescription.StreamStatus)
	switch status {
	case kinesis.StreamStatusActive, kinesis.StreamStatusUpdating:
		return nil
	}
	return si.Fatal("stream "+w.opt.Stream+" is not usable, status "+status, nil)
}

func isExpiredIterator(err error) bool {
	if ae, ok := err.(awserr.Error); ok {
		return ae.Code() == kinesis.ErrCodeExpiredIteratorException
	}
	return false
}
