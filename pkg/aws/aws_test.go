package aws

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets struct {
	values map[string]string
	calls  int
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	v, ok := f.values[aws.ToString(in.SecretId)]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(v)}, nil
}

func TestSecretsClient_CachesValues(t *testing.T) {
	api := &fakeSecrets{values: map[string]string{"storefront/JWT_SECRET": "s3cret"}}
	sm := newSecretsClient(api)

	for i := 0; i < 3; i++ {
		v, err := sm.GetSecret(context.Background(), "storefront/JWT_SECRET")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", v)
	}
	assert.Equal(t, 1, api.calls)

	_, err := sm.GetSecret(context.Background(), "missing")
	assert.Error(t, err)
}

func TestSecretsClient_GetSecretMap(t *testing.T) {
	api := &fakeSecrets{values: map[string]string{
		"storefront/DB_CREDENTIALS": `{"host":"db.internal","port":5432,"username":"shop","password":"pw","engine":null}`,
		"broken":                    `not json`,
	}}
	sm := newSecretsClient(api)

	creds, err := sm.GetSecretMap(context.Background(), "storefront/DB_CREDENTIALS")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"host":     "db.internal",
		"port":     "5432",
		"username": "shop",
		"password": "pw",
	}, creds)

	_, err = sm.GetSecretMap(context.Background(), "broken")
	assert.Error(t, err)
}

type fakeMetricsAPI struct {
	inputs []*cloudwatch.PutMetricDataInput
}

func (f *fakeMetricsAPI) PutMetricData(_ context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.inputs = append(f.inputs, in)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func TestMetricsClient_Disabled(t *testing.T) {
	api := &fakeMetricsAPI{}
	m := newMetricsClient(api, "Storefront/API", false)

	assert.False(t, m.IsEnabled())
	assert.NoError(t, m.RecordCount(context.Background(), MetricCartItemsAdded, nil))
	assert.Empty(t, api.inputs)

	var nilClient *MetricsClient
	assert.False(t, nilClient.IsEnabled())
}

func TestMetricsClient_RecordsDatum(t *testing.T) {
	api := &fakeMetricsAPI{}
	m := newMetricsClient(api, "Storefront/API", true)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	require.NoError(t, m.RecordLatency(context.Background(), MetricHTTPLatency, 1500*time.Millisecond,
		map[string]string{"Path": "/api/v1/cart", "Method": "GET"}))
	require.NoError(t, m.RecordCount(context.Background(), MetricCartItemsRemoved, nil))

	require.Len(t, api.inputs, 2)
	assert.Equal(t, "Storefront/API", aws.ToString(api.inputs[0].Namespace))

	latency := api.inputs[0].MetricData[0]
	assert.Equal(t, MetricHTTPLatency, aws.ToString(latency.MetricName))
	assert.Equal(t, 1500.0, aws.ToFloat64(latency.Value))
	assert.Equal(t, cwtypes.StandardUnitMilliseconds, latency.Unit)
	assert.Equal(t, fixed, aws.ToTime(latency.Timestamp))
	require.Len(t, latency.Dimensions, 2)
	assert.Equal(t, "Method", aws.ToString(latency.Dimensions[0].Name))
	assert.Equal(t, "Path", aws.ToString(latency.Dimensions[1].Name))

	count := api.inputs[1].MetricData[0]
	assert.Equal(t, cwtypes.StandardUnitCount, count.Unit)
	assert.Equal(t, 1.0, aws.ToFloat64(count.Value))
	assert.Empty(t, count.Dimensions)
}

type fakeLogsAPI struct {
	mu          sync.Mutex
	groupExists bool
	streams     []string
	batches     [][]string
}

func (f *fakeLogsAPI) CreateLogGroup(context.Context, *cloudwatchlogs.CreateLogGroupInput, ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error) {
	if f.groupExists {
		return nil, &types.ResourceAlreadyExistsException{Message: aws.String("exists")}
	}
	return &cloudwatchlogs.CreateLogGroupOutput{}, nil
}

func (f *fakeLogsAPI) PutRetentionPolicy(context.Context, *cloudwatchlogs.PutRetentionPolicyInput, ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutRetentionPolicyOutput, error) {
	return &cloudwatchlogs.PutRetentionPolicyOutput{}, nil
}

func (f *fakeLogsAPI) CreateLogStream(_ context.Context, in *cloudwatchlogs.CreateLogStreamInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error) {
	f.streams = append(f.streams, aws.ToString(in.LogStreamName))
	return &cloudwatchlogs.CreateLogStreamOutput{}, nil
}

func (f *fakeLogsAPI) PutLogEvents(_ context.Context, in *cloudwatchlogs.PutLogEventsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var lines []string
	for _, e := range in.LogEvents {
		lines = append(lines, aws.ToString(e.Message))
	}
	f.batches = append(f.batches, lines)
	return &cloudwatchlogs.PutLogEventsOutput{}, nil
}

func (f *fakeLogsAPI) lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []string
	for _, b := range f.batches {
		all = append(all, b...)
	}
	return all
}

func TestCloudWatchLogsClient_FlushesOnClose(t *testing.T) {
	api := &fakeLogsAPI{groupExists: true}
	c, err := newCloudWatchLogsClient(context.Background(), api, "", "storefront-api", time.Hour)
	require.NoError(t, err)
	require.Len(t, api.streams, 1)
	assert.True(t, strings.HasPrefix(api.streams[0], "storefront-api-"))
	assert.Equal(t, "/storefront/api", c.logGroupName)

	for _, line := range []string{`{"msg":"one"}`, `{"msg":"two"}`} {
		n, err := c.Write([]byte(line))
		require.NoError(t, err)
		assert.Equal(t, len(line), n)
	}
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	assert.Equal(t, []string{`{"msg":"one"}`, `{"msg":"two"}`}, api.lines())
}

func TestCloudWatchLogsClient_FlushesOnTick(t *testing.T) {
	api := &fakeLogsAPI{}
	c, err := newCloudWatchLogsClient(context.Background(), api, "/custom", "svc", 10*time.Millisecond)
	require.NoError(t, err)
	defer c.Close()

	_, _ = c.Write([]byte("tick"))

	assert.Eventually(t, func() bool {
		return len(api.lines()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestS3Store_URLs(t *testing.T) {
	cfg := aws.Config{
		Region: "me-central-1",
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{AccessKeyID: "AKID", SecretAccessKey: "secret"}, nil
		}),
	}

	store := NewS3Store(cfg, "storefront-media", "")
	assert.Equal(t, "https://storefront-media.s3.me-central-1.amazonaws.com/products/a.png", store.ObjectURL("products/a.png"))

	store = NewS3Store(cfg, "storefront-media", "https://cdn.example.com/")
	assert.Equal(t, "https://cdn.example.com/products/a.png", store.ObjectURL("products/a.png"))

	url, _, err := store.PresignPut(context.Background(), "products/a.png", "image/png", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "storefront-media/products/a.png")
	assert.Contains(t, url, "X-Amz-Signature=")
}

type fakeSNSAPI struct {
	input *sns.PublishInput
}

func (f *fakeSNSAPI) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = in
	return &sns.PublishOutput{MessageId: aws.String("m-1")}, nil
}

func TestSNSClient_Publish(t *testing.T) {
	api := &fakeSNSAPI{}
	c := &SNSClient{api: api}

	err := c.Publish(context.Background(), "arn:aws:sns:me-central-1:1:cart", []byte(`{"a":1}`), map[string]string{"event_type": "cart.item_added"})
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:sns:me-central-1:1:cart", aws.ToString(api.input.TopicArn))
	assert.Equal(t, `{"a":1}`, aws.ToString(api.input.Message))
	attr := api.input.MessageAttributes["event_type"]
	assert.Equal(t, "String", aws.ToString(attr.DataType))
	assert.Equal(t, "cart.item_added", aws.ToString(attr.StringValue))

	api.input = nil
	assert.Error(t, c.Publish(context.Background(), "", []byte("x"), nil))
	assert.Nil(t, api.input)
}
