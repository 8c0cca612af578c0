// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

const (
	Tool       = "custodia"
	BannerBlue = `
                        o                 oo
  ooooo  o    o  ooooo o0o0o   ooooo      oo
 oo      o    o oo      o0    oo   oo  oooo0
 oo      o    o  oooo   oo    oo   oo oo  o0
 oo      oo  o0     oo  oo 0  oo   oo o0  o0
  ooooo   oooo0 o0ooo   0oo0   ooooo   ooo0o
`
	BannerGold = `
    0o
    oo
 oooo0  oo  ooo
oo  o0   ooo o0
o0  o0   oo
 ooo0o o0o0       vversion
`
	DocRoot = "https://docs.custodia.platform.engineering/en/latest"
)
