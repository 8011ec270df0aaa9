package main

import (
	"sync"
	"time"

	"fpminer/fp_config"
	"fpminer/rock-share/base/config"
	"fpminer/rock-share/base/logger"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map"
)

// MineRequest 一次挖掘请求, 命令行和http共用
type MineRequest struct {
	Path       string  `json:"path" binding:"required"` // 事务文件
	Output     string  `json:"output"`                  // 结果文件, 为空时写到结果目录下
	Support    float64 `json:"support"`
	Count      uint32  `json:"count"` // 最小计数, 非0时覆盖support
	Confidence float64 `json:"confidence"`
	Lift       float64 `json:"lift"`
	Workers    int     `json:"workers"`
	Format     string  `json:"format"`
	Filter     string  `json:"filter"`
	Dot        string  `json:"dot"` // FP树的graphviz输出路径
	PrintTree  bool    `json:"print_tree"`
	Async      bool    `json:"async"`
}

// MineResponse 挖掘结果摘要
type MineResponse struct {
	TaskId     string `json:"task_id"`
	ResultPath string `json:"result_path"`
	RuleSize   int    `json:"rule_size"`
	ItemSets   int    `json:"item_sets"`
	SpentTime  int64  `json:"spent_time"` // ms
}

// Task 服务端记录的任务状态
type Task struct {
	mu       sync.Mutex
	Id       string        `json:"id"`
	Status   string        `json:"status"`
	Request  MineRequest   `json:"request"`
	Response *MineResponse `json:"response,omitempty"`
	Error    string        `json:"error,omitempty"`
	Start    time.Time     `json:"start"`
	End      *time.Time    `json:"end,omitempty"` // 运行中为nil
}

func (t *Task) finish(response *MineResponse, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	end := time.Now()
	t.End = &end
	if err != nil {
		t.Status = fp_config.TaskFailed
		t.Error = err.Error()
		return
	}
	t.Status = fp_config.TaskFinished
	t.Response = response
}

// snapshot 返回可以安全序列化的副本
func (t *Task) snapshot() *Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	return &Task{
		Id:       t.Id,
		Status:   t.Status,
		Request:  t.Request,
		Response: t.Response,
		Error:    t.Error,
		Start:    t.Start,
		End:      t.End,
	}
}

// taskRegistry taskId -> *Task
var taskRegistry = cmap.New()

// finishedBefore 任务已结束且结束时间早于deadline
func (t *Task) finishedBefore(deadline time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.End != nil && t.End.Before(deadline)
}

func newTask(request MineRequest) *Task {
	evictTasks(time.Now().Add(-config.All.Server.TaskRetention))
	task := &Task{
		Id:      uuid.NewString(),
		Status:  fp_config.TaskRunning,
		Request: request,
		Start:   time.Now(),
	}
	taskRegistry.Set(task.Id, task)
	return task
}

// evictTasks 删除deadline之前结束的任务, 运行中的任务不删. 返回删除的个数
func evictTasks(deadline time.Time) int {
	evicted := 0
	for id, v := range taskRegistry.Items() {
		if v.(*Task).finishedBefore(deadline) {
			taskRegistry.Remove(id)
			evicted++
		}
	}
	if evicted > 0 {
		logger.Infof("evicted %d finished tasks, %d left", evicted, taskRegistry.Count())
	}
	return evicted
}

func getTask(id string) (*Task, bool) {
	v, ok := taskRegistry.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*Task), true
}
