package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithGroupID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "com", false},
		{"dotted", "com.acme.shop", false},
		{"underscore", "com.acme_corp", false},
		{"empty", "", true},
		{"leading dot", ".com.acme", true},
		{"digit segment", "com.1acme", true},
		{"hyphen", "com.acme-corp", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithGroupID(tt.id)(c)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.id, c.GroupID)
			}
		})
	}
}

func TestWithArtifactID(t *testing.T) {
	t.Run("sets artifact id", func(t *testing.T) {
		c := &Config{}
		err := WithArtifactID("shop")(c)

		require.NoError(t, err)
		assert.Equal(t, "shop", c.ArtifactID)
	})

	t.Run("empty artifact id returns error", func(t *testing.T) {
		c := &Config{}
		err := WithArtifactID("")(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithBasePackage(t *testing.T) {
	t.Run("sets base package", func(t *testing.T) {
		c := &Config{}
		err := WithBasePackage("com.acme.shop")(c)

		require.NoError(t, err)
		assert.Equal(t, "com.acme.shop", c.BasePackage)
	})

	t.Run("invalid package returns error", func(t *testing.T) {
		c := &Config{}
		err := WithBasePackage("com..shop")(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("empty package returns error", func(t *testing.T) {
		c := &Config{}
		err := WithBasePackage("")(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithAppName(t *testing.T) {
	t.Run("pascal-cases the name", func(t *testing.T) {
		c := &Config{}
		err := WithAppName("shop backend")(c)

		require.NoError(t, err)
		assert.Equal(t, "Shop_backend", c.AppName)
	})

	t.Run("empty name returns error", func(t *testing.T) {
		c := &Config{}
		err := WithAppName("")(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithServerPort(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		wantErr bool
	}{
		{"common", 8080, false},
		{"low", 1, false},
		{"high", 65535, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"out of range", 70000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithServerPort(tt.port)(c)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.port, c.ServerPort)
			}
		})
	}
}

func TestWithWorkers(t *testing.T) {
	t.Run("sets worker count", func(t *testing.T) {
		c := &Config{}
		err := WithWorkers(4)(c)

		require.NoError(t, err)
		assert.Equal(t, 4, c.Workers)
	})

	t.Run("zero workers returns error", func(t *testing.T) {
		c := &Config{}
		err := WithWorkers(0)(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestConfigApply(t *testing.T) {
	t.Run("applies multiple options", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(
			WithGroupID("com.acme"),
			WithArtifactID("shop"),
			WithServerPort(9090),
		)

		require.NoError(t, err)
		assert.Equal(t, "com.acme", c.GroupID)
		assert.Equal(t, "shop", c.ArtifactID)
		assert.Equal(t, 9090, c.ServerPort)
	})

	t.Run("stops on first error", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(
			WithGroupID(""),        // Error
			WithArtifactID("shop"), // Should not be applied
		)

		require.Error(t, err)
		assert.Empty(t, c.GroupID)
		assert.Empty(t, c.ArtifactID)
	})
}

func TestConfigApplyAll(t *testing.T) {
	t.Run("collects all errors", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(
			WithGroupID(""),    // Error
			WithArtifactID(""), // Error
		)

		require.Error(t, err)
		// errors.Join returns an error with Unwrap() []error
		unwrapper, ok := err.(interface{ Unwrap() []error })
		require.True(t, ok, "error should implement Unwrap() []error")
		assert.Equal(t, 2, len(unwrapper.Unwrap()))
	})

	t.Run("returns nil when all succeed", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(
			WithGroupID("com.acme"),
			WithArtifactID("shop"),
		)

		require.NoError(t, err)
	})
}

func TestNewConfig(t *testing.T) {
	t.Run("creates config with options", func(t *testing.T) {
		c, err := NewConfig(
			WithGroupID("com.acme"),
			WithArtifactID("shop"),
		)

		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "com.acme", c.GroupID)
		assert.Equal(t, "shop", c.ArtifactID)
	})

	t.Run("returns error on invalid option", func(t *testing.T) {
		c, err := NewConfig(
			WithGroupID(""),
		)

		require.Error(t, err)
		assert.Nil(t, c)
	})
}

func TestMustNewConfig(t *testing.T) {
	t.Run("returns config on success", func(t *testing.T) {
		c := MustNewConfig(
			WithGroupID("com.acme"),
		)

		require.NotNil(t, c)
		assert.Equal(t, "com.acme", c.GroupID)
	})

	t.Run("panics on error", func(t *testing.T) {
		assert.Panics(t, func() {
			MustNewConfig(WithGroupID(""))
		})
	})
}
