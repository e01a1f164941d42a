// Package domain models county-level election returns and the swing score
// derived from them.
//
// # Data Source
//
// Raw vote data follows the MIT Election Data and Science Lab county returns
// layout: one CSV row per (county, year, party, vote bucket), with columns
// such as "state_po", "county_name", "county_fips", "party_simplified", and
// "votes". Column names vary between vintages, so every entry point takes an
// explicit ColumnMapping instead of hard-coding names.
//
// # Data Conventions
//
// Party labels:
//
//	Free text with many variants ("DEMOCRAT", "DEM", "Democratic", ...).
//	Labels are standardized to DEM, REP, or OTHER by case-insensitive
//	substring matching against configured synonym lists, evaluated in fixed
//	precedence DEM > REP > OTHER. Unmapped or missing labels become OTHER.
//
// Vote counts:
//
//	May arrive as integers, float strings ("1523.0"), or garbage. Unparseable
//	or missing values are treated as 0 rather than rejecting the row; a
//	malformed bucket must never abort a state's batch.
//
// County FIPS:
//
//	A 5-digit decimal identifier, but sources encode it as int, float
//	("13121.0"), or string. NormalizeFIPS converts any of these to a
//	fixed-width zero-padded string; unparseable values normalize to "".
//
// Margin conventions:
//
//	margin = dem_votes - rep_votes (positive means the Democratic candidate
//	carried the county). margin_pct = margin / total_votes, defined as 0 when
//	total_votes is 0. closeness = 1 - |margin_pct|, so 1.0 is an exact tie.
//
// # Swing Score
//
// Score links a county's results across two election years and combines four
// min-max-normalized components (margin change, closeness, turnout, size)
// into a weighted composite in [0,1]. Counties present in only one of the two
// years are dropped by the inner join, not scored and not errored: an
// incomplete time series cannot be scored, and excluding it also changes the
// normalization denominator, so the policy is load-bearing and tested.
//
// # Tiers
//
// ClassifyTier buckets a score into five ordered priority tiers (S highest,
// D lowest) over contiguous half-open intervals, with the exact upper bound
// 1.0 absorbed by the top tier. Tier bands, descriptions, and icons are
// configuration, not code.
package domain
