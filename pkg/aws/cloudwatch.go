package aws

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

const (
	logBatchSize     = 100
	logFlushInterval = 2 * time.Second
	logQueueSize     = 1024
	logRetentionDays = 30
)

type cloudWatchLogsAPI interface {
	CreateLogGroup(ctx context.Context, params *cloudwatchlogs.CreateLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error)
	PutRetentionPolicy(ctx context.Context, params *cloudwatchlogs.PutRetentionPolicyInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutRetentionPolicyOutput, error)
	CreateLogStream(ctx context.Context, params *cloudwatchlogs.CreateLogStreamInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error)
	PutLogEvents(ctx context.Context, params *cloudwatchlogs.PutLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error)
}

// CloudWatchLogsClient ships log lines to a CloudWatch Logs stream. It is an
// io.Writer for the zap tee: Write only queues the line, and a background
// loop sends batches. Lines are dropped when the queue is full.
type CloudWatchLogsClient struct {
	api           cloudWatchLogsAPI
	logGroupName  string
	logStreamName string

	queue   chan types.InputLogEvent
	done    chan struct{}
	closing sync.Once
}

// NewCloudWatchLogsClient creates the log group (if needed) and a fresh stream
// named after serviceName, then starts shipping.
func NewCloudWatchLogsClient(ctx context.Context, cfg aws.Config, logGroupName, serviceName string) (*CloudWatchLogsClient, error) {
	return newCloudWatchLogsClient(ctx, cloudwatchlogs.NewFromConfig(cfg), logGroupName, serviceName, logFlushInterval)
}

func newCloudWatchLogsClient(ctx context.Context, api cloudWatchLogsAPI, logGroupName, serviceName string, flushEvery time.Duration) (*CloudWatchLogsClient, error) {
	if logGroupName == "" {
		logGroupName = "/storefront/api"
	}
	c := &CloudWatchLogsClient{
		api:           api,
		logGroupName:  logGroupName,
		logStreamName: fmt.Sprintf("%s-%d", serviceName, time.Now().Unix()),
		queue:         make(chan types.InputLogEvent, logQueueSize),
		done:          make(chan struct{}),
	}

	if err := c.ensureLogGroup(ctx); err != nil {
		return nil, fmt.Errorf("ensure log group %s: %w", logGroupName, err)
	}
	if _, err := api.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(c.logGroupName),
		LogStreamName: aws.String(c.logStreamName),
	}); err != nil {
		return nil, fmt.Errorf("create log stream: %w", err)
	}

	go c.run(flushEvery)
	return c, nil
}

func (c *CloudWatchLogsClient) ensureLogGroup(ctx context.Context) error {
	_, err := c.api.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: aws.String(c.logGroupName),
	})
	var exists *types.ResourceAlreadyExistsException
	if err != nil && !errors.As(err, &exists) {
		return err
	}

	_, err = c.api.PutRetentionPolicy(ctx, &cloudwatchlogs.PutRetentionPolicyInput{
		LogGroupName:    aws.String(c.logGroupName),
		RetentionInDays: aws.Int32(logRetentionDays),
	})
	return err
}

// Write queues one encoded log entry. It never blocks and never fails.
func (c *CloudWatchLogsClient) Write(p []byte) (int, error) {
	event := types.InputLogEvent{
		Message:   aws.String(string(p)),
		Timestamp: aws.Int64(time.Now().UnixMilli()),
	}
	select {
	case c.queue <- event:
	default:
	}
	return len(p), nil
}

// Close stops accepting lines and flushes what is queued.
func (c *CloudWatchLogsClient) Close() error {
	c.closing.Do(func() { close(c.queue) })
	<-c.done
	return nil
}

func (c *CloudWatchLogsClient) run(flushEvery time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(flushEvery)
	defer ticker.Stop()

	batch := make([]types.InputLogEvent, 0, logBatchSize)
	for {
		select {
		case event, ok := <-c.queue:
			if !ok {
				c.send(batch)
				return
			}
			batch = append(batch, event)
			if len(batch) >= logBatchSize {
				c.send(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			c.send(batch)
			batch = batch[:0]
		}
	}
}

func (c *CloudWatchLogsClient) send(batch []types.InputLogEvent) {
	if len(batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := make([]types.InputLogEvent, len(batch))
	copy(events, batch)
	if _, err := c.api.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  aws.String(c.logGroupName),
		LogStreamName: aws.String(c.logStreamName),
		LogEvents:     events,
	}); err != nil {
		// the logger itself is the sink, so report on stderr
		fmt.Fprintf(os.Stderr, "cloudwatch logs: dropped %d events: %v\n", len(events), err)
	}
}
