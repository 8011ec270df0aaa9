package utils

import (
	"fmt"
)

type ServiceError struct {
	Code uint32
	Msg  string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("ServiceError: code=%d, msg=%s", e.Code, e.Msg)
}

var (
	// business error code: [500000, 600000)
	ErrOpenCsv          = &ServiceError{500001, "open csv error"}
	ErrReadCsv          = &ServiceError{500002, "read csv error"}
	ErrParameter        = &ServiceError{500005, "invalid parameter"}
	ErrInvalidThreshold = &ServiceError{500010, "invalid threshold"}
	ErrWriteCsv         = &ServiceError{500011, "write result error"}
	ErrUnknownFormat    = &ServiceError{500012, "unknown output format"}
	ErrInvalidFilter    = &ServiceError{500013, "invalid rule filter"}
	ErrTaskNotExist     = &ServiceError{500014, "task not exist"}
	ErrInternal         = &ServiceError{500015, "internal error"}
)

// thresholdError 在ErrInvalidThreshold基础上带上具体违反的约束, errors.Is 仍然可以匹配
type thresholdError struct {
	constraint string
}

func (e *thresholdError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidThreshold.Error(), e.constraint)
}

func (e *thresholdError) Unwrap() error {
	return ErrInvalidThreshold
}

func InvalidThreshold(format string, args ...interface{}) error {
	return &thresholdError{constraint: fmt.Sprintf(format, args...)}
}

// internalError 挖掘任务里recover到的panic
type internalError struct {
	value interface{}
}

func (e *internalError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInternal.Error(), e.value)
}

func (e *internalError) Unwrap() error {
	return ErrInternal
}

func InternalError(value interface{}) error {
	return &internalError{value: value}
}
