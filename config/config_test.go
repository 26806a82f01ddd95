package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/soundrip-cli/soundrip/filesystem"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("network.page.limit")
			So(result, ShouldEqual, "network_page_limit")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Field", t, func() {
		f := Default["network.retries"]

		Convey("Env name carries the application prefix", func() {
			So(f.Env(), ShouldEqual, "SOUNDRIP_NETWORK_RETRIES")
		})

		Convey("Type name reflects the default value", func() {
			So(f.typeName(), ShouldEqual, "int")
		})
	})
}
