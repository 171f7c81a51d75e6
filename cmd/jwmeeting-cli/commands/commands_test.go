package commands

import (
	"testing"

	"jwmeeting-backend/lib/meetingapi"

	"github.com/stretchr/testify/require"
)

func TestCacheCommandRegistered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"cache"})
	require.NoError(t, err)
	require.Equal(t, cacheCmd, cmd)
	require.NotNil(t, cmd.Flags().Lookup("clear"))
}

func TestLanguagesSyncHasDbOverride(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"languages", "sync"})
	require.NoError(t, err)
	require.Equal(t, languagesSyncCmd, cmd)
	require.NotNil(t, cmd.InheritedFlags().Lookup("db"))
}

func TestSortedMaterialTypes(t *testing.T) {
	distribution := map[string]meetingapi.MaterialShare{
		"videos": {Count: 3, Percentage: 60},
		"audio":  {Count: 1, Percentage: 20},
		"images": {Count: 1, Percentage: 20},
	}
	require.Equal(t,
		[]string{"audio", "images", "videos"},
		sortedMaterialTypes(distribution),
	)
}
