package constant

// AsciiArtLogo is rendered by the root command's long help output.
const AsciiArtLogo = `
                               _      _
  ___  ___  _   _ _ __   __| |_ __(_)_ __
 / __|/ _ \| | | | '_ \ / _` + "`" + ` | '__| | '_ \
 \__ \ (_) | |_| | | | | (_| | |  | | |_) |
 |___/\___/ \__,_|_| |_|\__,_|_|  |_| .__/
                                    |_|
`
