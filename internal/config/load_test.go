package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tauraamui/graydaemon/pkg/configdef"
)

const testConfigPath = "/etc/graydaemon/config.json"

type LoadConfigTestSuite struct {
	suite.Suite
	configResolver configdef.Resolver
	fs             afero.Fs
	path           string
	configFile     afero.File
}

func (suite *LoadConfigTestSuite) SetupSuite() {
	suite.fs = afero.NewMemMapFs()
	suite.configResolver = DefaultResolver()

	// use in memory FS in implementation for tests
	fs = suite.fs
	require.NoError(suite.T(), os.Setenv(configPathEnv, testConfigPath))
}

func (suite *LoadConfigTestSuite) TearDownSuite() {
	fs = afero.NewOsFs()
	require.NoError(suite.T(), os.Unsetenv(configPathEnv))
}

func (suite *LoadConfigTestSuite) SetupTest() {
	path, err := resolveConfigPath()
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.fs.MkdirAll(filepath.Dir(path), os.ModeDir|os.ModePerm))
	suite.path = path

	configFile, err := suite.fs.Create(path)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), configFile)

	suite.configFile = configFile

	suite.overwriteTestConfig(
		`{
			"debug": true,
			"node_name": "grayscaler",
			"anonymous": false,
			"master_address": "rosmaster:11311",
			"host": "10.0.0.4",
			"input_topic": "/cam/rgb",
			"output_topic": "/cam/gray12",
			"queue_size": 4,
			"propagate_header": false,
			"testcard_fps": 5
		}`,
	)
}

func (suite *LoadConfigTestSuite) overwriteTestConfig(config string) {
	require.NoError(suite.T(), suite.configFile.Truncate(0))
	_, err := suite.configFile.Seek(0, 0)
	require.NoError(suite.T(), err)
	_, err = suite.configFile.WriteString(config)
	assert.NoError(suite.T(), err)
}

func (suite *LoadConfigTestSuite) TearDownTest() {
	require.NoError(suite.T(), suite.configFile.Close())
	suite.fs.Remove(suite.path)
}

func (suite *LoadConfigTestSuite) TestLoadConfig() {
	config, err := suite.configResolver.Resolve()
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), configdef.Values{
		Debug:           true,
		NodeName:        "grayscaler",
		Anonymous:       false,
		MasterAddress:   "rosmaster:11311",
		Host:            "10.0.0.4",
		InputTopic:      "/cam/rgb",
		OutputTopic:     "/cam/gray12",
		QueueSize:       4,
		PropagateHeader: false,
		TestcardFPS:     5,
	}, config)
}

func (suite *LoadConfigTestSuite) TestLoadConfigFillsMissingFieldsWithDefaults() {
	suite.overwriteTestConfig(`{"master_address": "10.0.0.2:11311"}`)

	config, err := suite.configResolver.Resolve()
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "image_converter", config.NodeName)
	assert.True(suite.T(), config.Anonymous)
	assert.Equal(suite.T(), "10.0.0.2:11311", config.MasterAddress)
	assert.Equal(suite.T(), "/camera/color/image_raw", config.InputTopic)
	assert.Equal(suite.T(), "/camera/color/image_raw_grayscale", config.OutputTopic)
	assert.Equal(suite.T(), 10, config.QueueSize)
	assert.True(suite.T(), config.PropagateHeader)
	assert.Zero(suite.T(), config.TestcardFPS)
}

func (suite *LoadConfigTestSuite) TestLoadConfigFailsOnMalformedJSON() {
	suite.overwriteTestConfig(`{"node_name": `)

	config, err := suite.configResolver.Resolve()
	require.Error(suite.T(), err)
	assert.Empty(suite.T(), config)
	assert.Contains(suite.T(), err.Error(), "parsing configuration error")
}

func (suite *LoadConfigTestSuite) TestLoadConfigFailsValidationOnSameTopics() {
	suite.overwriteTestConfig(`{"input_topic": "/cam", "output_topic": "/cam"}`)

	config, err := suite.configResolver.Resolve()
	require.Error(suite.T(), err)
	require.Empty(suite.T(), config)

	assert.EqualError(suite.T(), err, "validation failed: input and output topics must differ")
}

func (suite *LoadConfigTestSuite) TestLoadConfigFailsValidationOnQueueSize() {
	suite.overwriteTestConfig(`{"queue_size": 0}`)

	_, err := suite.configResolver.Resolve()
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), `Validation error in field "QueueSize"`)
}

func (suite *LoadConfigTestSuite) TestLoadConfigMissingFile() {
	require.NoError(suite.T(), suite.fs.Remove(suite.path))

	_, err := suite.configResolver.Resolve()
	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, configdef.ErrConfigNotFound)
}

func TestLoadConfigTestSuite(t *testing.T) {
	suite.Run(t, &LoadConfigTestSuite{})
}
