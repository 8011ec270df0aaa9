package main

import (
	"errors"
	"net/http"
	"runtime/debug"

	"fpminer/rock-share/base/config"
	"fpminer/rock-share/base/logger"
	"fpminer/utils"

	"github.com/gin-gonic/gin"
)

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/mine", start)
	r.GET("/tasks/:id", taskStatus)
	return r
}

// start 没给的阈值用配置文件里的值. async为true时立即返回task id, 结果通过/tasks/:id查询
func start(c *gin.Context) {
	requestJson := MineRequest{
		Support:    config.All.Mining.MinSupport,
		Count:      config.All.Mining.MinCount,
		Confidence: config.All.Mining.MinConfidence,
		Lift:       config.All.Mining.MinLift,
		Workers:    config.All.Mining.Workers,
		Format:     config.All.Mining.Format,
		Filter:     config.All.Mining.Filter,
	}
	if err := c.ShouldBindJSON(&requestJson); err != nil {
		logger.Warnf("bad mine request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}
	// 服务端不往控制台打印树
	requestJson.PrintTree = false

	task := newTask(requestJson)
	if requestJson.Async {
		go runTask(task)
		c.JSON(http.StatusAccepted, gin.H{
			"success": true,
			"task_id": task.Id,
		})
		return
	}

	response, err := runTask(task)
	if err != nil {
		c.JSON(statusOf(err), gin.H{
			"success": false,
			"task_id": task.Id,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"task_id":     task.Id,
		"result_path": response.ResultPath,
		"rule_size":   response.RuleSize,
		"item_sets":   response.ItemSets,
		"spent_time":  response.SpentTime,
	})
}

func runTask(task *Task) (response *MineResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("recover.err:%v, stack:\n%v", r, string(debug.Stack()))
			err = utils.InternalError(r)
		}
		task.finish(response, err)
	}()
	request := task.Request
	return DigRules(task.Id, &request, config.All.Server.ResultDir, nil)
}

func taskStatus(c *gin.Context) {
	task, ok := getTask(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": utils.ErrTaskNotExist.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, task.snapshot())
}

// statusOf 参数类错误返回400, 其余500
func statusOf(err error) int {
	switch {
	case errors.Is(err, utils.ErrParameter),
		errors.Is(err, utils.ErrInvalidThreshold),
		errors.Is(err, utils.ErrInvalidFilter),
		errors.Is(err, utils.ErrUnknownFormat),
		errors.Is(err, utils.ErrOpenCsv),
		errors.Is(err, utils.ErrReadCsv):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
