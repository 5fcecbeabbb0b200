package migration

// Serialized legacy account tries along with their node stores.
const (
	orchidStorageBlob = "00003513db97e8e9afff71727bce4b2ac01ff3b874e4814cbb31828829b730fd7eca00000000001e00000020efca24d1" +
		"1fd5d95b6494378857d8e5856e69a78cb7bf7922c881fbb85ded0f1b000000460203000000fdb14332af18a02002d98c" +
		"7cd3162d3e9bf8b3661f50f4d69e83c184fcc02b5178662b1587771c16e780e7988169f42aa3d6121c06bb5966459068" +
		"ace8a93f15d900000020a5a9f4b9699784b58dde3e02788d1b6d58ecfc228bfa79503663b7113004748e000000460201" +
		"00030000efca24d11fd5d95b6494378857d8e5856e69a78cb7bf7922c881fbb85ded0f1b3cbbb09e97eb85ba23ec1822" +
		"eea6e057f24e8d4f6d698c4fa671df3b574f380b00000020cacb5c364d3a0d4484b9f5799acd0280d284292b665855f4" +
		"fa78d17630236dd000000053f8518423c29b62890e33fafbdd50580000a056e81f171bcc55a6ff8345e692c0f86e5b48" +
		"e01b996cadc001622fb5e363b421a0c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a47000" +
		"000020ea63ce51a897193cf2df6e91a9814fde7d812cc53a9b99dbfb8883099857b17000000046020100030000613277" +
		"7b0dcb4885220f39408aa27c32693b518e691b38188b187a25d6bdd398abbe1f7f9a1e84fe21b8587100c3b74a36e242" +
		"33855f7f0f17e00ac1552bfd7e0000002056e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b4" +
		"210000000602010000000000000020ee9767b78a6ce5f0d753af61043266f3e5139910f0706da4d3210950b9f0695a00" +
		"000053f851841e173a4c8908ac7230489e800000a011eb4d4c3a3be276820b4732166e964512357fc6c95344744621f3" +
		"dce2140a4aa0ce76085c8aafb41c0ef1a91e297fa8f51dfd1738825a382077617aad9186897c000000204d98ab739502" +
		"4fcee86793faec0fb1407b8a988774caee979e55594af248094700000046020100030000ca3f6737ecaa4957fc253a90" +
		"b97a69f6cd85b35c3315b4d96150a22495604ee80faed22496bdf7ae9aa65ac1a81fed84f23fa2d8f3313a725ad494df" +
		"659b8fbb0000002056232e967ce61fd9429822dc5ead2e878362903ce20fd7c1929abcd6ebd5170d0000004602010003" +
		"0000ea63ce51a897193cf2df6e91a9814fde7d812cc53a9b99dbfb8883099857b170a5a9f4b9699784b58dde3e02788d" +
		"1b6d58ecfc228bfa79503663b7113004748e00000020abbe1f7f9a1e84fe21b8587100c3b74a36e24233855f7f0f17e0" +
		"0ac1552bfd7e000000460203000000fd75bcb031c9ac0e57cee2317aa7e86bd653931258f8439957c552dda4297c3350" +
		"5c81c3a5275e6bf8ab5bada94c6e2debac620dbe95fd221fe08236b9549c31b2000000206132777b0dcb4885220f3940" +
		"8aa27c32693b518e691b38188b187a25d6bdd398000000460203000000fd50d1a9c0ef89eb1eaf1332eff254b9a3acf5" +
		"238c5b68641a88ed3d8aa3e47b40cacb5c364d3a0d4484b9f5799acd0280d284292b665855f4fa78d17630236dd00000" +
		"00204df7fe53ef2166b4ba5f874aff489b40a57d737981804e13038f87b9d6715d14000000460203000000fc98c8a8cb" +
		"46de7b1920ea33b91c9d7eb5bb0621cf5a9cc8443e9ed70f81ab7e20551812f907afbe9f896f497ba3664b54ffce9407" +
		"3bae5aa8a1c90810dc7953f4000000209c6d8278b9f2ad00ad97366bed668c68113ef3eb08d27d30ce6d12489c75c5e4" +
		"000000460203000000fbe855b478adef5ad6a85f42b0c259f07361a5fa5e76d323141ff4b75ed85b98c0ee9767b78a6c" +
		"e5f0d753af61043266f3e5139910f0706da4d3210950b9f0695a0000002090185a8f6e377afc0e92713ddeb385ba25ed" +
		"63ad13f21c6a9c44919d952e372c00000046020100030000d6330ec57ade6c9f2d723985abc70790c752b5719e59ed7d" +
		"c22d57c80f1f081aed8b70427b97a4b2aee2e98cc8f88d7d1b8cbc1ef4e22827585ccc6e7467b32600000020551812f9" +
		"07afbe9f896f497ba3664b54ffce94073bae5aa8a1c90810dc7953f400000053f85184e7f2bc408920a26da277a12800" +
		"00a056e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421a0c5d2460186f7233c927e7db2dc" +
		"c703c0e500b653ca82273b7bfad8045d85a470000000200faed22496bdf7ae9aa65ac1a81fed84f23fa2d8f3313a725a" +
		"d494df659b8fbb000000460201000300002628411db3608a02b233dfc11c22c118b4331eeb040d6a119b899a08eacc88" +
		"182bea7e6337e2cfc8b2a5fd0468ba7b66442526e9ab81ae459211c0b00e04cdba0000002090f0aaabb52cf5345d6a24" +
		"8edb78970db4f8f4157334c969133636473d962a6b00000053f85184f1d00c2d8907c0860e5a80dc0000a056e81f171b" +
		"cc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421a0c5d2460186f7233c927e7db2dcc703c0e500b653" +
		"ca82273b7bfad8045d85a470000000203cbbb09e97eb85ba23ec1822eea6e057f24e8d4f6d698c4fa671df3b574f380b" +
		"00000047020100030001009c6d8278b9f2ad00ad97366bed668c68113ef3eb08d27d30ce6d12489c75c5e45a452145b2" +
		"730e85950ee225954945f40b3350c999c7e4fbfc2742eac5ab3cbc00000020d6330ec57ade6c9f2d723985abc70790c7" +
		"52b5719e59ed7dc22d57c80f1f081a000000460203000000fb1b767eb1e51fab7620a9c0db80be314e384ff1e62502a1" +
		"d3ff6f00e1d4735b603747803acb776e564ed21b3df0cc9b7b9a020081239cb5eaf9fbbc09fe158339000000202adde0" +
		"f4259adf28ad6319a20c04208de869d01fc80a88fac327ef8dd6b396b400000053f851841feff205892fd03576f6b688" +
		"0000a056e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421a0c5d2460186f7233c927e7db2" +
		"dcc703c0e500b653ca82273b7bfad8045d85a47000000020afd73bf33a6607a7ee747603b26f016bf4c1e7a0b3e500cc" +
		"2ffc10a8974efb2300000053f851840102a0fd8914542ba12a337c0000a07a6bf06e8e84f90933b79bf84ff45242eb04" +
		"c9677f18cb0704836ad9467e0f96a02328404cb3d202860b72aac53ab103d38c365b60331824d80d164f6921e27a3200" +
		"0000205a452145b2730e85950ee225954945f40b3350c999c7e4fbfc2742eac5ab3cbc000000460203000000fbb9f067" +
		"deb59063bb101cc49e1570b7bb8ad19e97cb0fcf831a150aeda4f892202adde0f4259adf28ad6319a20c04208de869d0" +
		"1fc80a88fac327ef8dd6b396b4000000205c81c3a5275e6bf8ab5bada94c6e2debac620dbe95fd221fe08236b9549c31" +
		"b200000053f85184705801718918650127cc3dc80000a0d575306f01546673a74fceec78818c646a408915ed93f0731a" +
		"aa8fa3283de615a08be9da6943e5bf840b8ffaaa5f88203ca01a5c609c2f9c6e427258f9f274eefe000000202bea7e63" +
		"37e2cfc8b2a5fd0468ba7b66442526e9ab81ae459211c0b00e04cdba000000460203000000fd6c47ec9caf640a114e6c" +
		"7c7e0e98f83f05f3cd8d9497d8f7bea56ea64dd507587aa9422af22e8c3d77b7aa096944a729a8532464631bdcb72902" +
		"1bdf4351937100000020ca3f6737ecaa4957fc253a90b97a69f6cd85b35c3315b4d96150a22495604ee8000000470201" +
		"000300010090185a8f6e377afc0e92713ddeb385ba25ed63ad13f21c6a9c44919d952e372c4df7fe53ef2166b4ba5f87" +
		"4aff489b40a57d737981804e13038f87b9d6715d1400000020ed8b70427b97a4b2aee2e98cc8f88d7d1b8cbc1ef4e228" +
		"27585ccc6e7467b326000000460203000000fb4b0ac9a996daf435c502bffa00cb111e7cd57348ee9c72b323148f37ed" +
		"cb6400afd73bf33a6607a7ee747603b26f016bf4c1e7a0b3e500cc2ffc10a8974efb23000000207aa9422af22e8c3d77" +
		"b7aa096944a729a8532464631bdcb729021bdf4351937100000053f85184c47fa07489221920e76a48b40000a05aebe7" +
		"d8638c97d07675c9788d96105320f67b48d81ce34b43c31a8e0f60a2d9a0395139c01d04c4b144535c688055fa4baab7" +
		"03373af103800733b60b3d857f61000000203513db97e8e9afff71727bce4b2ac01ff3b874e4814cbb31828829b730fd" +
		"7eca0000004602010003000056232e967ce61fd9429822dc5ead2e878362903ce20fd7c1929abcd6ebd5170d4d98ab73" +
		"95024fcee86793faec0fb1407b8a988774caee979e55594af248094700000020662b1587771c16e780e7988169f42aa3" +
		"d6121c06bb5966459068ace8a93f15d900000053f851843af01d4f891a9dfe6a920ccc0000a056e81f171bcc55a6ff83" +
		"45e692c0f86e5b48e01b996cadc001622fb5e363b421a0c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7b" +
		"fad8045d85a470000000203747803acb776e564ed21b3df0cc9b7b9a020081239cb5eaf9fbbc09fe15833900000053f8" +
		"5184ca02da2a8912f939c99edab80000a0db06ef684dcdf23ad7c5d1c1afdcf642d087e4c9643e52365589efe8d3bf0c" +
		"62a0560ebca6bb0dc143e6ba187c62c764d01345f4008828066b71c0f10c49d08a4a000000202628411db3608a02b233" +
		"dfc11c22c118b4331eeb040d6a119b899a08eacc8818000000460203000000fd1471e9e8a8ced25fd7fe0dacc8484996" +
		"ded2a96d8890ce96168b2387174120c090f0aaabb52cf5345d6a248edb78970db4f8f4157334c969133636473d962a6b"
	remascStorageBlob = "00007ce41845ab31e2b9df73df3037736b925e66202506fa95f7fdbe6dd2aa5e5f86000000000006000000203751c11e" +
		"ce97e219c009f4a6d3c4a723f770432fb50770fe10261641e383903b00000046f8440180a056e81f171bcc55a6ff8345" +
		"e692c0f86e5b48e01b996cadc001622fb5e363b421a0c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfa" +
		"d8045d85a470000000207ce41845ab31e2b9df73df3037736b925e66202506fa95f7fdbe6dd2aa5e5f86000000460201" +
		"00030000f32816cbedb5ff40e48b70e3328663810abce71eba7f4b53087ed14f8e5f9460a31cc2bcaf6326c864510ac3" +
		"b06b3d19f014ae677b9e441da6d33bdaf13a2eab00000020f32816cbedb5ff40e48b70e3328663810abce71eba7f4b53" +
		"087ed14f8e5f9460000000460203000000ffc23972da1468d621757392437ecff845a61e5e3f1db6c3fc99e571a7bc1f" +
		"fcc07ddca309a9955d4e8e500770d8f8c73ad3aca292217884bd21abd764b6122a7c0000002056e81f171bcc55a6ff83" +
		"45e692c0f86e5b48e01b996cadc001622fb5e363b42100000006020100000000000000207ddca309a9955d4e8e500770" +
		"d8f8c73ad3aca292217884bd21abd764b6122a7c00000046f8448080a01748476f798f2104d23f1b05ef472d5a4bd1a5" +
		"f9ad4341a91b3aa724aa45fa8fa0c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a4700000" +
		"0020a31cc2bcaf6326c864510ac3b06b3d19f014ae677b9e441da6d33bdaf13a2eab000000460203000000ff786cf13c" +
		"f43c50286c8c8453051f02facc25ef68efaccb23ff2d53c0c97993143751c11ece97e219c009f4a6d3c4a723f770432f" +
		"b50770fe10261641e383903b"
)
