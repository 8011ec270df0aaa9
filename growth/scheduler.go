package growth

import (
	"runtime"
	"runtime/debug"
	"sync"

	"fpminer/fp_config"
	"fpminer/rock-share/base/logger"

	"github.com/panjf2000/ants/v2"
)

// Scheduler 把互相独立的子任务分发到协程池, 父任务等待全部完成后按任务顺序合并结果.
// 池是非阻塞的: 没有空闲worker时任务直接在提交者的协程里执行, 递归提交不会因为池满而死锁
type Scheduler struct {
	pool    *ants.Pool
	workers int
}

// NewScheduler workers<=0时取CPU数, 1表示串行
func NewScheduler(workers int) (*Scheduler, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > fp_config.MaxWorkers {
		workers = fp_config.MaxWorkers
	}
	s := &Scheduler{workers: workers}
	if workers == 1 {
		return s, nil
	}
	// 提交者自己也会执行任务, 所以池里少一个
	pool, err := ants.NewPool(workers-1, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	s.pool = pool
	return s, nil
}

func (s *Scheduler) Workers() int {
	if s == nil {
		return 1
	}
	return s.workers
}

func (s *Scheduler) Close() {
	if s != nil && s.pool != nil {
		s.pool.Release()
	}
}

// ForkJoin 执行所有任务, results[i]对应tasks[i]. 任务中的panic在所有任务结束后在调用者协程重新抛出
func ForkJoin[T any](s *Scheduler, tasks []func() T) []T {
	results := make([]T, len(tasks))
	if s == nil || s.pool == nil || len(tasks) < 2 {
		for i, task := range tasks {
			results[i] = task()
		}
		return results
	}

	var (
		wg       sync.WaitGroup
		once     sync.Once
		panicked interface{}
	)
	for i := range tasks {
		i := i
		wg.Add(1)
		run := func() {
			defer func() {
				if err := recover(); err != nil {
					once.Do(func() {
						panicked = err
						logger.Errorf("recover.err:%v, stack:\n%v", err, string(debug.Stack()))
					})
				}
				wg.Done()
			}()
			results[i] = tasks[i]()
		}
		// 最后一个任务留给自己
		if i == len(tasks)-1 {
			run()
			continue
		}
		if err := s.pool.Submit(run); err != nil {
			run()
		}
	}
	wg.Wait()
	if panicked != nil {
		panic(panicked)
	}
	return results
}
