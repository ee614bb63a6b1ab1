package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/hibiken/asynq"

	ie "github.com/voidshard/jobgate/pkg/errors"
	"github.com/voidshard/jobgate/pkg/structs"
)

const (
	asyncWorkQueue   = "jobgate"
	asyncTaskProcess = "jobgate:process"
)

type Asynq struct {
	opts *Options

	// the asynq client & inspector
	ins *asynq.Inspector
	cli *asynq.Client

	// if register is called we're intended to start a server
	lock sync.Mutex
	mux  *asynq.ServeMux
	srv  *asynq.Server
}

func NewAsynqQueue(opts *Options) (*Asynq, error) {
	opts.SetDefaults()
	ins := asynq.NewInspector(redisOpt(opts))
	cli := asynq.NewClient(redisOpt(opts))
	return &Asynq{
		opts: opts,
		ins:  ins,
		cli:  cli,
	}, nil
}

func (a *Asynq) Close() error {
	a.lock.Lock()
	srv := a.srv
	a.lock.Unlock()
	if srv != nil {
		srv.Stop()
		srv.Shutdown()
	}
	return errors.Join(a.cli.Close(), a.ins.Close())
}

func (a *Asynq) Register(handler Handler) error {
	if handler == nil {
		return fmt.Errorf("%w: handler is required", ie.ErrInvalidArg)
	}
	mux := a.buildServer()
	mux.HandleFunc(asyncTaskProcess, func(ctx context.Context, t *asynq.Task) error {
		job, err := decodeJob(t)
		if err != nil {
			// a payload we can't read will never succeed
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		return handler(ctx, job)
	})
	return nil
}

func (a *Asynq) Run() error {
	a.lock.Lock()
	srv, mux := a.srv, a.mux
	a.lock.Unlock()
	if srv == nil {
		return fmt.Errorf("%w: no handler registered", ie.ErrInvalidArg)
	}
	return srv.Run(mux)
}

func (a *Asynq) Enqueue(ctx context.Context, job *structs.Job) (*structs.JobHandle, error) {
	task, err := encodeJob(job)
	if err != nil {
		return nil, err
	}
	info, err := a.cli.EnqueueContext(
		ctx,
		task,
		asynq.Queue(asyncWorkQueue),
		asynq.TaskID(job.ID),
		asynq.MaxRetry(0),
		asynq.Retention(a.opts.Retention),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ie.ErrQueueUnavailable, err)
	}
	return &structs.JobHandle{ID: info.ID, Status: toStatus(info.State)}, nil
}

func (a *Asynq) Status(ctx context.Context, id string) (*structs.JobHandle, error) {
	info, err := a.ins.GetTaskInfo(asyncWorkQueue, id)
	if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil, fmt.Errorf("%w: job %s", ie.ErrNotFound, id)
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", ie.ErrQueueUnavailable, err)
	}
	return &structs.JobHandle{ID: info.ID, Status: toStatus(info.State)}, nil
}

// buildServer creates the server & mux the first time it's called, and returns the mux.
func (a *Asynq) buildServer() *asynq.ServeMux {
	a.lock.Lock()
	defer a.lock.Unlock()
	if a.mux != nil {
		// someone locked and set this first
		return a.mux
	}
	log := a.opts.Logger.With(slogQueue, asyncWorkQueue)
	srv := asynq.NewServer(
		redisOpt(a.opts),
		asynq.Config{
			Queues:      map[string]int{asyncWorkQueue: 1},
			Concurrency: a.opts.Concurrency,
			Logger:      &logAdapter{log: log},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, t *asynq.Task, err error) {
				id, _ := asynq.GetTaskID(ctx)
				log.Error("job failed", "job", id, "type", t.Type(), "err", err)
			}),
		},
	)
	a.srv = srv
	a.mux = asynq.NewServeMux()
	return a.mux
}

func redisOpt(opts *Options) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:      opts.URL,
		Password:  opts.Password,
		DB:        opts.DB,
		TLSConfig: opts.TLSConfig,
	}
}

func encodeJob(job *structs.Job) (*asynq.Task, error) {
	if job == nil || job.ID == "" {
		return nil, fmt.Errorf("%w: job id is required", ie.ErrInvalidArg)
	}
	data, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("%w: job %s can't be encoded: %v", ie.ErrInvalidArg, job.ID, err)
	}
	return asynq.NewTask(asyncTaskProcess, data), nil
}

func decodeJob(t *asynq.Task) (*structs.Job, error) {
	job := &structs.Job{}
	err := json.Unmarshal(t.Payload(), job)
	return job, err
}

// toStatus maps asynq's task states onto job statuses.
func toStatus(st asynq.TaskState) structs.Status {
	switch st {
	case asynq.TaskStatePending, asynq.TaskStateScheduled, asynq.TaskStateAggregating, asynq.TaskStateRetry:
		return structs.PENDING
	case asynq.TaskStateActive:
		return structs.STARTED
	case asynq.TaskStateCompleted:
		return structs.SUCCESS
	case asynq.TaskStateArchived:
		return structs.FAILURE
	default:
		return structs.UNKNOWN
	}
}
